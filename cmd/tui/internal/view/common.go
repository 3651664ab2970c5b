package view

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrJamesThe3rd/medistock/internal/auth"
)

const opTimeout = 5 * time.Second

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// LoginMsg is emitted once the user has chosen a panel.
type LoginMsg struct {
	Role auth.Role
}

// FormatPrice formats a unit price for table display.
func FormatPrice(price float64) string {
	return fmt.Sprintf("$%.2f", price)
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// OpCtx returns a context with a standard timeout for store operations.
func OpCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), opTimeout)
}
