package view

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/medistock/internal/auth"
	"github.com/MrJamesThe3rd/medistock/internal/checkout"
	"github.com/MrJamesThe3rd/medistock/internal/export"
	"github.com/MrJamesThe3rd/medistock/internal/inventory"
	"github.com/MrJamesThe3rd/medistock/internal/report"
	"github.com/MrJamesThe3rd/medistock/internal/sales"
)

const salesPageSize = 5

type salesState int

const (
	salesStateBrowse salesState = iota
	salesStateSearch
	salesStateRecord
	salesStateEdit
)

var sortFields = []report.Field{"", report.FieldID, report.FieldItemName, report.FieldQuantity, report.FieldDate}

// SalesModel renders the ledger with the search/sort/paginate pipeline, the
// record-sale form, admin corrections, and the CSV export.
type SalesModel struct {
	salesService     *sales.Service
	checkoutService  *checkout.Service
	inventoryService *inventory.Service
	exportService    *export.Service
	role             auth.Role

	state  salesState
	table  table.Model
	search textinput.Model

	ledger []*sales.Sale // full ledger, insertion order
	items  []*inventory.Item
	page   []*sales.Sale // slice currently shown

	query      string
	sortIdx    int
	descending bool
	pageNum    int
	totalPages int

	form    *huh.Form
	editing *sales.Sale

	loading bool
	err     error
	status  string

	// Form bindings.
	formItemID   string
	formItemName string
	formQuantity string
	formDate     string
}

func NewSalesModel(
	salesSvc *sales.Service,
	checkoutSvc *checkout.Service,
	invSvc *inventory.Service,
	exportSvc *export.Service,
	role auth.Role,
) SalesModel {
	columns := []table.Column{
		{Title: "ID", Width: 10},
		{Title: "Item", Width: 28},
		{Title: "Qty", Width: 6},
		{Title: "Date", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(salesPageSize+1),
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

	search := textinput.New()
	search.Placeholder = "Search sales..."
	search.CharLimit = 64

	return SalesModel{
		salesService:     salesSvc,
		checkoutService:  checkoutSvc,
		inventoryService: invSvc,
		exportService:    exportSvc,
		role:             role,
		table:            t,
		search:           search,
		pageNum:          1,
		loading:          true,
	}
}

func (m SalesModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m SalesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case salesLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.ledger = msg.ledger
		m.items = msg.items
		m.refreshTable()

		return m, nil

	case salesSavedMsg:
		if msg.err != nil {
			m.status = saleErrorMessage(msg.err)
		} else {
			m.status = msg.status
		}

		m.state = salesStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadCmd()
	}

	switch m.state {
	case salesStateBrowse:
		return m.updateBrowse(msg)
	case salesStateSearch:
		return m.updateSearch(msg)
	case salesStateRecord, salesStateEdit:
		return m.updateForm(msg)
	}

	return m, nil
}

// saleErrorMessage maps transaction failures to the user-facing wording of
// the sales page; the failed operation leaves both collections untouched.
func saleErrorMessage(err error) string {
	switch {
	case errors.Is(err, inventory.ErrInsufficientStock):
		return "Not enough stock for this sale"
	case errors.Is(err, inventory.ErrNotFound):
		return "Item no longer exists"
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}

func (m SalesModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "/":
			m.state = salesStateSearch
			m.search.SetValue(m.query)
			m.search.Focus()
			m.table.Blur()

			return m, textinput.Blink
		case "s":
			m.sortIdx = (m.sortIdx + 1) % len(sortFields)
			m.pageNum = 1
			m.refreshTable()

			return m, nil
		case "o":
			m.descending = !m.descending
			m.refreshTable()

			return m, nil
		case "n":
			if m.pageNum < m.totalPages {
				m.pageNum++
				m.refreshTable()
			}

			return m, nil
		case "p":
			if m.pageNum > 1 {
				m.pageNum--
				m.refreshTable()
			}

			return m, nil
		case "x":
			return m, m.exportCmd()
		case "a":
			if !m.role.CanEdit() {
				m.status = "Read-only session"
				return m, nil
			}

			return m.enterRecordForm()
		case "e":
			if !m.role.CanEdit() {
				m.status = "Read-only session"
				return m, nil
			}

			idx := m.table.Cursor()
			if idx < 0 || idx >= len(m.page) {
				return m, nil
			}

			return m.enterEditForm(m.page[idx])
		case "d":
			if !m.role.CanEdit() {
				m.status = "Read-only session"
				return m, nil
			}

			idx := m.table.Cursor()
			if idx < 0 || idx >= len(m.page) {
				return m, nil
			}

			return m, m.deleteCmd(m.page[idx])
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m SalesModel) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEnter, tea.KeyEsc:
			if keyMsg.Type == tea.KeyEnter {
				m.query = m.search.Value()
			}

			m.state = salesStateBrowse
			m.search.Blur()
			m.table.Focus()
			m.pageNum = 1
			m.refreshTable()

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)

	return m, cmd
}

func (m SalesModel) enterRecordForm() (tea.Model, tea.Cmd) {
	if len(m.items) == 0 {
		m.status = "No items in inventory"
		return m, nil
	}

	m.editing = nil
	m.formItemID = m.items[0].ID.String()
	m.formQuantity = "1"
	m.formDate = FormatDate(time.Now())

	options := make([]huh.Option[string], 0, len(m.items))
	for _, item := range m.items {
		label := fmt.Sprintf("%s (%d %s in stock)", item.Name, item.Stock, item.Unit)
		options = append(options, huh.NewOption(label, item.ID.String()))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("item").
				Title("Product").
				Options(options...).
				Value(&m.formItemID),

			huh.NewInput().
				Key("quantity").
				Title("Quantity").
				Value(&m.formQuantity),

			huh.NewInput().
				Key("date").
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&m.formDate),
		),
	).WithWidth(52).WithShowHelp(false)

	m.state = salesStateRecord
	m.table.Blur()

	return m, m.form.Init()
}

func (m SalesModel) enterEditForm(sale *sales.Sale) (tea.Model, tea.Cmd) {
	m.editing = sale
	m.formItemName = sale.ItemName
	m.formQuantity = strconv.Itoa(sale.Quantity)
	m.formDate = FormatDate(sale.Date)

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("item_name").
				Title("Item").
				Value(&m.formItemName),

			huh.NewInput().
				Key("quantity").
				Title("Quantity").
				Value(&m.formQuantity),

			huh.NewInput().
				Key("date").
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&m.formDate),
		),
	).WithWidth(52).WithShowHelp(false)

	m.state = salesStateEdit
	m.table.Blur()

	return m, m.form.Init()
}

func (m SalesModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = salesStateBrowse
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

	if m.state == salesStateRecord {
		return m, m.recordCmd()
	}

	return m, m.editCmd()
}

func (m SalesModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading sales...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	sortLabel := "none"
	if sortFields[m.sortIdx] != "" {
		sortLabel = string(sortFields[m.sortIdx])
		if m.descending {
			sortLabel += " desc"
		} else {
			sortLabel += " asc"
		}
	}

	header := fmt.Sprintf("Search: %s | Sort [s/o]: %s | Page %d of %d",
		activeStyle(valueOr(m.query, "-")),
		activeStyle(sortLabel),
		m.pageNum, max(m.totalPages, 1),
	)

	if m.state == salesStateSearch {
		header = m.search.View()
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	help := "Esc: back | /: search | s: sort | o: order | n/p: page | x: export csv | r: refresh"
	if m.role.CanEdit() {
		help += " | a: add | e: edit | d: delete"
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
		lipgloss.NewStyle().Faint(true).Render(help),
	)

	if (m.state == salesStateRecord || m.state == salesStateEdit) && m.form != nil {
		title := "Record Sale"
		if m.state == salesStateEdit {
			title = "Edit Sale"
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("35")).
			Width(56).
			Render(fmt.Sprintf("%s\n\n%s", title, m.form.View()))

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}

	return s
}

// refreshTable recomputes the filter/sort/paginate pipeline over the ledger.
func (m *SalesModel) refreshTable() {
	filtered := report.Filter(m.ledger, m.query)

	if field := sortFields[m.sortIdx]; field != "" {
		dir := report.Asc
		if m.descending {
			dir = report.Desc
		}

		filtered = report.Sort(filtered, field, dir)
	}

	m.totalPages = (len(filtered) + salesPageSize - 1) / salesPageSize
	if m.pageNum > m.totalPages {
		m.pageNum = max(m.totalPages, 1)
	}

	m.page = report.Paginate(filtered, m.pageNum, salesPageSize)

	rows := make([]table.Row, 0, len(m.page))
	for _, sale := range m.page {
		rows = append(rows, table.Row{
			shortID(sale.ID),
			sale.ItemName,
			strconv.Itoa(sale.Quantity),
			FormatDate(sale.Date),
		})
	}
	m.table.SetRows(rows)
}

func shortID(id uuid.UUID) string {
	return strings.SplitN(id.String(), "-", 2)[0]
}

// Messages

type salesLoadedMsg struct {
	ledger []*sales.Sale
	items  []*inventory.Item
	err    error
}

func (m SalesModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		ledger, err := m.salesService.List(ctx)
		if err != nil {
			return salesLoadedMsg{err: err}
		}

		items, err := m.inventoryService.List(ctx)

		return salesLoadedMsg{ledger: ledger, items: items, err: err}
	}
}

type salesSavedMsg struct {
	status string
	err    error
}

func (m SalesModel) recordCmd() tea.Cmd {
	itemID, err := uuid.Parse(m.formItemID)
	if err != nil {
		return func() tea.Msg { return salesSavedMsg{err: err} }
	}

	quantity, _ := strconv.Atoi(strings.TrimSpace(m.formQuantity))

	date, err := time.Parse(time.DateOnly, strings.TrimSpace(m.formDate))
	if err != nil {
		date = time.Now()
	}

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		if _, err := m.checkoutService.Sell(ctx, itemID, quantity, date); err != nil {
			return salesSavedMsg{err: err}
		}

		return salesSavedMsg{status: "Sale recorded"}
	}
}

func (m SalesModel) editCmd() tea.Cmd {
	sale := m.editing
	itemName := m.formItemName
	quantity, _ := strconv.Atoi(strings.TrimSpace(m.formQuantity))

	params := sales.UpdateParams{
		ItemName: &itemName,
		Quantity: &quantity,
	}

	if date, err := time.Parse(time.DateOnly, strings.TrimSpace(m.formDate)); err == nil {
		params.Date = &date
	}

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		if _, err := m.salesService.Update(ctx, sale.ID, params); err != nil {
			return salesSavedMsg{err: err}
		}

		return salesSavedMsg{status: "Sale updated"}
	}
}

func (m SalesModel) deleteCmd(sale *sales.Sale) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		// Deleting a sale corrects the ledger; stock stays as is.
		if err := m.salesService.Remove(ctx, sale.ID); err != nil {
			return salesSavedMsg{err: err}
		}

		return salesSavedMsg{status: "Sale deleted"}
	}
}

func (m SalesModel) exportCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		csv, err := m.exportService.SalesCSV(ctx)
		if err != nil {
			return salesSavedMsg{err: err}
		}

		if err := os.WriteFile(export.Filename, []byte(csv), 0o644); err != nil {
			return salesSavedMsg{err: err}
		}

		return salesSavedMsg{status: fmt.Sprintf("Exported to %s", export.Filename)}
	}
}
