package handlers

import (
	"errors"

	"github.com/campusfind/campusfind-backend/internal/dto"
	"github.com/campusfind/campusfind-backend/internal/match"
	"github.com/campusfind/campusfind-backend/internal/middleware"
	"github.com/campusfind/campusfind-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AdminHandler struct {
	adminService *services.AdminService
	engine       *match.Engine
}

func NewAdminHandler(adminService *services.AdminService, engine *match.Engine) *AdminHandler {
	return &AdminHandler{adminService: adminService, engine: engine}
}

// RunBatchMatch sweeps every stored item through the match engine. It runs
// synchronously: the admin wants the scan/generated counts back.
func (h *AdminHandler) RunBatchMatch(c *fiber.Ctx) error {
	result, err := h.engine.SweepAll(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Batch matching failed: " + err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message":                 "Batch matching complete",
		"items_scanned":           result.ItemsScanned,
		"notifications_generated": result.NotificationsGenerated,
	})
}

func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.adminService.Stats()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Error fetching stats",
		})
	}
	return c.JSON(stats)
}

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.adminService.ListUsers()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Error fetching users",
		})
	}
	return c.JSON(users)
}

func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid user ID",
		})
	}

	if err := h.adminService.DeleteUser(userID, middleware.CurrentUserName(c)); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "User not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Error deleting user",
		})
	}
	return c.JSON(fiber.Map{"message": "User deleted successfully"})
}

func (h *AdminHandler) DeleteItem(c *fiber.Ctx) error {
	itemID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid item ID",
		})
	}

	if err := h.adminService.DeleteItem(itemID, middleware.CurrentUserName(c)); err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Item not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Error deleting item",
		})
	}
	return c.JSON(fiber.Map{"message": "Item deleted successfully"})
}

func (h *AdminHandler) RecentActivity(c *fiber.Ctx) error {
	activity, err := h.adminService.RecentActivity()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Error fetching activity",
		})
	}
	return c.JSON(activity)
}

func (h *AdminHandler) ItemsReport(c *fiber.Ctx) error {
	report, err := h.adminService.ItemsReport()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Error generating report data",
		})
	}
	return c.JSON(report)
}

func (h *AdminHandler) ListClaims(c *fiber.Ctx) error {
	claims, err := h.adminService.ListClaims()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Error fetching claims",
		})
	}
	return c.JSON(claims)
}

func (h *AdminHandler) ModerateClaim(c *fiber.Ctx) error {
	itemID, err := uuid.Parse(c.Params("itemID"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid item ID",
		})
	}
	claimID, err := uuid.Parse(c.Params("claimID"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid claim ID",
		})
	}

	var req dto.ModerateClaimRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	err = h.adminService.ModerateClaim(itemID, claimID, req.Status, middleware.CurrentUserName(c))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidClaimStatus):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrItemNotFound), errors.Is(err, services.ErrClaimNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Error updating claim",
			})
		}
	}
	return c.JSON(fiber.Map{"message": "Claim " + req.Status + " successfully"})
}

func (h *AdminHandler) CreateAnnouncement(c *fiber.Ctx) error {
	var req dto.AnnouncementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	announcement, err := h.adminService.CreateAnnouncement(&req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(announcement)
}

func (h *AdminHandler) ActiveAnnouncement(c *fiber.Ctx) error {
	announcement, err := h.adminService.ActiveAnnouncement()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Error fetching announcement",
		})
	}
	return c.JSON(announcement)
}

func (h *AdminHandler) Analytics(c *fiber.Ctx) error {
	analytics, err := h.adminService.Analytics()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Error fetching analytics",
		})
	}
	return c.JSON(analytics)
}

func (h *AdminHandler) SubmitFeedback(c *fiber.Ctx) error {
	var req dto.FeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if _, err := h.adminService.SubmitFeedback(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Feedback submitted"})
}

func (h *AdminHandler) ListFeedback(c *fiber.Ctx) error {
	feedback, err := h.adminService.ListFeedback()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Error fetching feedback",
		})
	}
	return c.JSON(feedback)
}

func (h *AdminHandler) ResolveFeedback(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid feedback ID",
		})
	}

	if err := h.adminService.ResolveFeedback(id, middleware.CurrentUserName(c)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Error updating feedback",
		})
	}
	return c.JSON(fiber.Map{"message": "Marked as resolved"})
}

func (h *AdminHandler) AuditLogs(c *fiber.Ctx) error {
	logs, err := h.adminService.AuditLogs()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Error fetching audit logs",
		})
	}
	return c.JSON(logs)
}

func (h *AdminHandler) ClearAuditLogs(c *fiber.Ctx) error {
	if err := h.adminService.ClearAuditLogs(middleware.CurrentUserName(c)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Error clearing audit logs",
		})
	}
	return c.JSON(fiber.Map{"message": "Audit logs cleared successfully"})
}
