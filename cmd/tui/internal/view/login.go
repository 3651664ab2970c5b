package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/medistock/internal/auth"
)

// LoginModel mirrors the sign-in page: credentials are checked for presence
// only, and the chosen panel decides what the session may edit.
type LoginModel struct {
	form *huh.Form

	formEmail    string
	formPassword string
	formRole     string
}

func NewLoginModel() LoginModel {
	m := LoginModel{formRole: string(auth.RoleStaff)}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("email").
				Title("Email").
				Placeholder("you@example.com").
				Value(&m.formEmail).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("email is required")
					}
					return nil
				}),

			huh.NewInput().
				Key("password").
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.formPassword).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("password is required")
					}
					return nil
				}),

			huh.NewSelect[string]().
				Key("role").
				Title("Panel").
				Options(
					huh.NewOption("Admin", string(auth.RoleAdmin)),
					huh.NewOption("Staff", string(auth.RoleStaff)),
				).
				Value(&m.formRole),
		),
	).WithWidth(45).WithShowHelp(false)

	return m
}

func (m LoginModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	role, err := auth.ParseRole(m.formRole)
	if err != nil {
		role = auth.RoleStaff
	}

	return m, func() tea.Msg {
		return LoginMsg{Role: role}
	}
}

func (m LoginModel) View() string {
	panel := lipgloss.NewStyle().
		Padding(1, 2).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("35")).
		Width(48).
		Render("Medistock — Sign in\n\n" + m.form.View())

	return lipgloss.NewStyle().Padding(1).Render(panel)
}
