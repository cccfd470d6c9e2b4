package watch

import (
	"fmt"

	"github.com/google/uuid"
)

func generateIDWithPrefix(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.Must(uuid.NewV7()).String())
}
