package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pavanTkumar/watch-price-app/internal/category"
	"github.com/pavanTkumar/watch-price-app/internal/engine"
	"github.com/pavanTkumar/watch-price-app/internal/model"
)

// Form field indexes.
const (
	fieldBrand = iota
	fieldPrice
	fieldService
	fieldCategory
)

// formModel is the add/edit form. In the simple variant only brand and
// price are shown; the extended variant adds a service type selector and
// a category field.
type formModel struct {
	registry     *category.Registry
	editingID    string
	serviceTypes []model.ServiceType
	brand        textinput.Model
	price        textinput.Model
	category     textinput.Model
	serviceIdx   int
	focus        int
	extended     bool
}

func newForm(extended bool, registry *category.Registry) formModel {
	brand := textinput.New()
	brand.Placeholder = "Watch brand"
	brand.CharLimit = 64
	brand.Focus()

	price := textinput.New()
	price.Placeholder = "Price ($)"
	price.CharLimit = 12

	cat := textinput.New()
	cat.Placeholder = "Category"
	cat.CharLimit = 64

	return formModel{
		registry:     registry,
		serviceTypes: model.BuiltinServiceTypes(),
		brand:        brand,
		price:        price,
		category:     cat,
		extended:     extended,
	}
}

// reset prepares the form for a new record.
func (f *formModel) reset() {
	f.editingID = ""
	f.brand.SetValue("")
	f.price.SetValue("")
	f.category.SetValue("")
	f.serviceIdx = 0
	f.setFocus(fieldBrand)
}

// prefill loads an existing record for editing.
func (f *formModel) prefill(rec model.ServiceRecord) {
	f.editingID = rec.ID
	f.brand.SetValue(rec.Brand)
	f.price.SetValue(rec.Price.String())
	f.category.SetValue(rec.Category)
	f.serviceIdx = 0
	for i, st := range f.serviceTypes {
		if st == rec.ServiceType {
			f.serviceIdx = i
			break
		}
	}
	f.setFocus(fieldBrand)
}

func (f *formModel) lastField() int {
	if f.extended {
		return fieldCategory
	}
	return fieldPrice
}

func (f *formModel) setFocus(field int) {
	f.focus = field
	f.brand.Blur()
	f.price.Blur()
	f.category.Blur()
	switch field {
	case fieldBrand:
		f.brand.Focus()
	case fieldPrice:
		f.price.Focus()
	case fieldCategory:
		f.category.Focus()
	}
}

func (f *formModel) nextField() {
	next := f.focus + 1
	if next > f.lastField() {
		next = fieldBrand
	}
	f.setFocus(next)
}

func (f *formModel) prevField() {
	prev := f.focus - 1
	if prev < fieldBrand {
		prev = f.lastField()
	}
	f.setFocus(prev)
}

func (f *formModel) serviceType() model.ServiceType {
	return f.serviceTypes[f.serviceIdx]
}

// request builds the reconciliation request from the current field values.
func (f *formModel) request() engine.Request {
	req := engine.Request{
		Brand: f.brand.Value(),
		Price: f.price.Value(),
	}
	if f.extended {
		req.ServiceType = f.serviceType().String()
		req.Category = f.category.Value()
	}
	return req
}

func (f formModel) update(msg tea.Msg) (formModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "down":
			f.nextField()
			return f, nil
		case "shift+tab", "up":
			f.prevField()
			return f, nil
		case "left", "right":
			if f.focus == fieldService {
				delta := 1
				if key.String() == "left" {
					delta = len(f.serviceTypes) - 1
				}
				f.serviceIdx = (f.serviceIdx + delta) % len(f.serviceTypes)
				return f, nil
			}
		}
	}

	var cmd tea.Cmd
	switch f.focus {
	case fieldBrand:
		f.brand, cmd = f.brand.Update(msg)
	case fieldPrice:
		f.price, cmd = f.price.Update(msg)
	case fieldCategory:
		f.category, cmd = f.category.Update(msg)
	}
	return f, cmd
}

func (f formModel) view(th theme) string {
	var b strings.Builder

	title := "Add Watch"
	if f.editingID != "" {
		title = "Edit Watch"
	}
	b.WriteString(th.Title.Render(title) + "\n")

	writeField := func(label, value string, focused bool) {
		rendered := th.FormLabel.Render(label)
		if focused {
			rendered = th.FormFocused.Render("> ") + rendered
		} else {
			rendered = "  " + rendered
		}
		b.WriteString(rendered + value + "\n")
	}

	writeField("Brand:", f.brand.View(), f.focus == fieldBrand)
	writeField("Price ($):", f.price.View(), f.focus == fieldPrice)

	if f.extended {
		writeField("Service:", fmt.Sprintf("< %s >", f.serviceType()), f.focus == fieldService)
		writeField("Category:", f.category.View(), f.focus == fieldCategory)
		labels := f.registry.Labels(f.serviceType())
		if len(labels) > 0 {
			b.WriteString(th.Help.Render("categories: "+strings.Join(labels, ", ")) + "\n")
		}
	}

	b.WriteString(th.Help.Render("enter save · esc cancel · tab next field"))
	return th.Box.Render(b.String())
}
