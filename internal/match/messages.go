package match

import (
	"fmt"

	"github.com/campusfind/campusfind-backend/internal/models"
)

const matchEmailSubject = "Potential Match Found!"

// matchMessage phrases the notification from the recipient's perspective,
// based on the category of the item being pointed at. Combined with the two
// directions of a pairing this yields the four message variants.
func matchMessage(about *models.Item) string {
	if about.Category == models.CategoryLost {
		return fmt.Sprintf("Someone posted a LOST item similar to your found item: %q", about.Title)
	}
	return fmt.Sprintf("Someone found an item that might match your lost item: %q", about.Title)
}

func matchEmailBody(name, message string) string {
	if name == "" {
		name = "there"
	}
	return fmt.Sprintf(`Hello %s,

%s

Please check the dashboard to view details.

Regards,
Campus Find Team
`, name, message)
}
