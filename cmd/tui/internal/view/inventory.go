package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/medistock/internal/auth"
	"github.com/MrJamesThe3rd/medistock/internal/inventory"
)

type inventoryState int

const (
	inventoryStateBrowse inventoryState = iota
	inventoryStateForm
)

// InventoryModel renders the stock table with the add/edit/delete surface.
// Staff sessions browse only; the edit keys are admin.
type InventoryModel struct {
	inventoryService *inventory.Service
	role             auth.Role

	state   inventoryState
	table   table.Model
	items   []*inventory.Item
	form    *huh.Form
	editing *inventory.Item // nil while adding

	loading bool
	err     error
	status  string

	// Form bindings; numbers are edited as text and coerced on save.
	formName     string
	formCategory string
	formUnit     string
	formStock    string
	formPrice    string
}

func NewInventoryModel(invSvc *inventory.Service, role auth.Role) InventoryModel {
	columns := []table.Column{
		{Title: "Name", Width: 28},
		{Title: "Category", Width: 16},
		{Title: "Stock", Width: 8},
		{Title: "Unit", Width: 8},
		{Title: "Price", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("35")).
		Bold(false)
	t.SetStyles(s)

	return InventoryModel{
		inventoryService: invSvc,
		role:             role,
		table:            t,
		loading:          true,
	}
}

func (m InventoryModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m InventoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case inventoryLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.items = msg.items
		m.refreshTable()

		return m, nil

	case inventorySavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = msg.status
		}

		m.state = inventoryStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case inventoryStateBrowse:
		return m.updateBrowse(msg)
	case inventoryStateForm:
		return m.updateForm(msg)
	}

	return m, nil
}

func (m InventoryModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "a":
			if !m.role.CanEdit() {
				m.status = "Read-only session"
				return m, nil
			}

			return m.enterForm(nil)
		case "e":
			if !m.role.CanEdit() {
				m.status = "Read-only session"
				return m, nil
			}

			idx := m.table.Cursor()
			if idx < 0 || idx >= len(m.items) {
				return m, nil
			}

			return m.enterForm(m.items[idx])
		case "d":
			if !m.role.CanEdit() {
				m.status = "Read-only session"
				return m, nil
			}

			idx := m.table.Cursor()
			if idx < 0 || idx >= len(m.items) {
				return m, nil
			}

			return m, m.deleteCmd(m.items[idx])
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m InventoryModel) enterForm(item *inventory.Item) (tea.Model, tea.Cmd) {
	m.editing = item

	if item != nil {
		m.formName = item.Name
		m.formCategory = item.Category
		m.formUnit = item.Unit
		m.formStock = strconv.Itoa(item.Stock)
		m.formPrice = strconv.FormatFloat(item.Price, 'f', -1, 64)
	} else {
		m.formName = ""
		m.formCategory = ""
		m.formUnit = ""
		m.formStock = "0"
		m.formPrice = "0"
	}

	required := func(field string) func(string) error {
		return func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("%s is required", field)
			}
			return nil
		}
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Key("name").Title("Name").Value(&m.formName).Validate(required("name")),
			huh.NewInput().Key("category").Title("Category").Value(&m.formCategory).Validate(required("category")),
			huh.NewInput().Key("unit").Title("Unit").Placeholder("strip, box, ...").Value(&m.formUnit).Validate(required("unit")),
			huh.NewInput().Key("stock").Title("Stock").Value(&m.formStock),
			huh.NewInput().Key("price").Title("Price").Value(&m.formPrice),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = inventoryStateForm
	m.table.Blur()

	return m, m.form.Init()
}

func (m InventoryModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = inventoryStateBrowse
			m.form = nil
			m.table.Focus()

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveCmd()
}

func (m InventoryModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading inventory...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	help := "Esc: back | r: refresh"
	if m.role.CanEdit() {
		help = "Esc: back | a: add | e: edit | d: delete | r: refresh"
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		tableView,
		lipgloss.NewStyle().Faint(true).Render(help),
	)

	if m.state == inventoryStateForm && m.form != nil {
		title := "Add New Item"
		if m.editing != nil {
			title = "Edit Item"
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("35")).
			Width(48).
			Render(fmt.Sprintf("%s\n\n%s", title, m.form.View()))

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *InventoryModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.items))
	for _, item := range m.items {
		rows = append(rows, table.Row{
			item.Name,
			item.Category,
			strconv.Itoa(item.Stock),
			item.Unit,
			FormatPrice(item.Price),
		})
	}
	m.table.SetRows(rows)
}

// Messages

type inventoryLoadedMsg struct {
	items []*inventory.Item
	err   error
}

func (m InventoryModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		items, err := m.inventoryService.List(ctx)

		return inventoryLoadedMsg{items: items, err: err}
	}
}

type inventorySavedMsg struct {
	status string
	err    error
}

func (m InventoryModel) saveCmd() tea.Cmd {
	editing := m.editing

	name := m.formName
	category := m.formCategory
	unit := m.formUnit

	// Invalid numbers coerce to zero, like the form boundary everywhere else.
	stock, _ := strconv.Atoi(strings.TrimSpace(m.formStock))
	price, _ := strconv.ParseFloat(strings.TrimSpace(m.formPrice), 64)

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		if editing != nil {
			_, err := m.inventoryService.Update(ctx, editing.ID, inventory.UpdateParams{
				Name:     &name,
				Category: &category,
				Unit:     &unit,
				Stock:    &stock,
				Price:    &price,
			})

			return inventorySavedMsg{status: "Item updated", err: err}
		}

		_, err := m.inventoryService.Add(ctx, inventory.CreateParams{
			Name:     name,
			Category: category,
			Unit:     unit,
			Stock:    stock,
			Price:    price,
		})

		return inventorySavedMsg{status: "Item added", err: err}
	}
}

func (m InventoryModel) deleteCmd(item *inventory.Item) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		err := m.inventoryService.Delete(ctx, item.ID)

		return inventorySavedMsg{status: fmt.Sprintf("Deleted %s", item.Name), err: err}
	}
}
