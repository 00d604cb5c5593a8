// Package tui implements the terminal presentation layer: a sortable record
// table plus an add/edit form. All record state lives in the reconciler;
// the TUI renders the snapshots it returns and holds nothing but the
// selection.
package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pavanTkumar/watch-price-app/internal/common"
	"github.com/pavanTkumar/watch-price-app/internal/engine"
	"github.com/pavanTkumar/watch-price-app/internal/model"
)

type mode int

const (
	modeBrowse mode = iota
	modeForm
	modeConfirm
)

type confirmKind int

const (
	confirmDuplicate confirmKind = iota
	confirmDelete
)

// sortFields cycles in this order.
var sortFields = []string{"date", "brand", "price", "category"}

// Model is the root bubbletea model.
type Model struct {
	ctx        context.Context
	reconciler *engine.Reconciler
	status     string
	statusKind int // 0 ok, 1 warn, 2 error
	confirmMsg string
	sortField  string
	records    []model.ServiceRecord
	theme      theme
	form       formModel
	table      table.Model
	pending    engine.Request
	mode       mode
	confirm    confirmKind
	sortIdx    int
	sortAsc    bool
	width      int
	height     int
	quitting   bool
}

// New creates the TUI over a reconciler.
func New(ctx context.Context, r *engine.Reconciler) (*Model, error) {
	extended := r.Variant() == engine.VariantExtended

	columns := []table.Column{
		{Title: "Brand", Width: 20},
		{Title: "Price", Width: 10},
		{Title: "Category", Width: 20},
	}
	if extended {
		columns = append(columns, table.Column{Title: "Service Type", Width: 18})
	}
	columns = append(columns, table.Column{Title: "Date Added", Width: 16})

	tbl := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	m := &Model{
		ctx:        ctx,
		reconciler: r,
		theme:      defaultTheme,
		form:       newForm(extended, r.Categories()),
		table:      tbl,
		sortField:  "date",
		sortAsc:    true,
	}

	records, err := r.Records(ctx)
	if err != nil {
		return nil, err
	}
	m.setRecords(records)
	return m, nil
}

// Run starts the program and blocks until the user quits.
func Run(ctx context.Context, r *engine.Reconciler) error {
	m, err := New(ctx, r)
	if err != nil {
		return err
	}
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// setRecords installs a fresh snapshot, re-applying the current sort.
func (m *Model) setRecords(records []model.ServiceRecord) {
	m.records = sortRecords(records, m.sortField, m.sortAsc)

	extended := m.reconciler.Variant() == engine.VariantExtended
	rows := make([]table.Row, 0, len(m.records))
	for _, rec := range m.records {
		row := table.Row{rec.Brand, "$" + rec.Price.StringFixed(2), rec.Category}
		if extended {
			row = append(row, rec.ServiceType.String())
		}
		row = append(row, rec.DateAdded())
		rows = append(rows, row)
	}
	m.table.SetRows(rows)
}

// selectedRecord returns the record under the table cursor, or nil.
func (m *Model) selectedRecord() *model.ServiceRecord {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.records) {
		return nil
	}
	rec := m.records[idx]
	return &rec
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(max(4, msg.Height-10))
		return m, nil
	case tea.KeyMsg:
		switch m.mode {
		case modeForm:
			return m.updateForm(msg)
		case modeConfirm:
			return m.updateConfirm(msg)
		default:
			return m.updateBrowse(msg)
		}
	}
	return m, nil
}

func (m *Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "a":
		m.form.reset()
		m.mode = modeForm
		m.status = ""
		return m, nil
	case "e":
		rec := m.selectedRecord()
		if rec == nil {
			m.setStatus("Select a record first.", 1)
			return m, nil
		}
		if err := m.reconciler.Select(m.ctx, rec.ID); err != nil {
			m.setStatus(common.UserMessage(err), 2)
			return m, nil
		}
		m.form.prefill(*rec)
		m.mode = modeForm
		m.status = ""
		return m, nil
	case "d":
		rec := m.selectedRecord()
		if rec == nil {
			m.setStatus("Select a record first.", 1)
			return m, nil
		}
		if err := m.reconciler.Select(m.ctx, rec.ID); err != nil {
			m.setStatus(common.UserMessage(err), 2)
			return m, nil
		}
		res, err := m.reconciler.Remove(m.ctx, false)
		if err != nil {
			m.setStatus(common.UserMessage(err), 2)
			return m, nil
		}
		m.confirm = confirmDelete
		m.confirmMsg = res.Message
		m.mode = modeConfirm
		return m, nil
	case "s":
		m.sortIdx = (m.sortIdx + 1) % len(sortFields)
		m.sortField = sortFields[m.sortIdx]
		m.setRecords(m.records)
		return m, nil
	case "o":
		m.sortAsc = !m.sortAsc
		m.setRecords(m.records)
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.reconciler.ClearSelection()
		m.mode = modeBrowse
		return m, nil
	case "enter":
		return m.submitForm(m.form.request())
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg)
	return m, cmd
}

// submitForm runs the add or update and routes the result: validation
// errors stay on the form, duplicate warnings switch to the confirm
// prompt, success returns to the table.
func (m *Model) submitForm(req engine.Request) (tea.Model, tea.Cmd) {
	var (
		res *engine.Result
		err error
	)
	if m.form.editingID != "" {
		res, err = m.reconciler.Update(m.ctx, req)
	} else {
		res, err = m.reconciler.Add(m.ctx, req)
	}
	if err != nil {
		m.setStatus(common.UserMessage(err), 2)
		return m, nil
	}

	if res.NeedsConfirmation {
		m.pending = req
		m.pending.Confirm = true
		m.confirm = confirmDuplicate
		m.confirmMsg = res.Message
		m.mode = modeConfirm
		return m, nil
	}

	m.setRecords(res.Records)
	m.setStatus(res.Message, 0)
	m.mode = modeBrowse
	return m, nil
}

func (m *Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		if m.confirm == confirmDelete {
			res, err := m.reconciler.Remove(m.ctx, true)
			if err != nil {
				m.setStatus(common.UserMessage(err), 2)
				m.mode = modeBrowse
				return m, nil
			}
			m.setRecords(res.Records)
			m.setStatus(res.Message, 0)
			m.mode = modeBrowse
			return m, nil
		}
		return m.submitForm(m.pending)
	case "n", "N", "esc":
		if m.confirm == confirmDelete {
			m.reconciler.ClearSelection()
			m.mode = modeBrowse
		} else {
			// Back to the form so the conflicting entry can be amended.
			m.mode = modeForm
		}
		m.setStatus("Operation cancelled.", 1)
		return m, nil
	}
	return m, nil
}

func (m *Model) setStatus(msg string, kind int) {
	m.status = msg
	m.statusKind = kind
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.theme.Title.Render("Watch Service Price Manager") + "\n")

	switch m.mode {
	case modeForm:
		b.WriteString(m.form.view(m.theme) + "\n")
	case modeConfirm:
		prompt := m.theme.StatusWarn.Render(m.confirmMsg) + "\n" +
			m.theme.Help.Render("y confirm · n cancel")
		b.WriteString(m.theme.Box.Render(prompt) + "\n")
	default:
		b.WriteString(m.table.View() + "\n")
		order := "asc"
		if !m.sortAsc {
			order = "desc"
		}
		b.WriteString(m.theme.Help.Render(fmt.Sprintf(
			"a add · e edit · d delete · s sort (%s/%s) · o order · q quit",
			m.sortField, order)) + "\n")
	}

	if m.status != "" {
		style := m.theme.StatusOK
		switch m.statusKind {
		case 1:
			style = m.theme.StatusWarn
		case 2:
			style = m.theme.StatusError
		}
		b.WriteString(style.Render(m.status) + "\n")
	}

	return b.String()
}

// sortRecords returns a sorted copy; the input order is not disturbed.
func sortRecords(records []model.ServiceRecord, field string, asc bool) []model.ServiceRecord {
	out := make([]model.ServiceRecord, len(records))
	copy(out, records)

	less := func(a, b model.ServiceRecord) bool {
		switch field {
		case "brand":
			return strings.ToLower(a.Brand) < strings.ToLower(b.Brand)
		case "price":
			return a.Price.LessThan(b.Price)
		case "category":
			return a.Category < b.Category
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if asc {
			return less(out[i], out[j])
		}
		return less(out[j], out[i])
	})
	return out
}
