package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jonathan/hirehub/internal/apply"
	"github.com/jonathan/hirehub/internal/observability"
	"github.com/jonathan/hirehub/internal/store"
	"github.com/jonathan/hirehub/internal/types"
)

type styles struct {
	title    lipgloss.Style
	subtle   lipgloss.Style
	selected lipgloss.Style
	badge    lipgloss.Style
	label    lipgloss.Style
	errText  lipgloss.Style
	success  lipgloss.Style
	panel    lipgloss.Style
	help     lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		subtle:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		selected: lipgloss.NewStyle().Background(lipgloss.Color("63")).Foreground(lipgloss.Color("230")),
		badge:    lipgloss.NewStyle().Foreground(lipgloss.Color("218")).Padding(0, 1),
		label:    lipgloss.NewStyle().Bold(true),
		errText:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		success:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		panel:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63")).Padding(1, 2),
		help:     lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("244")),
	}
}

// View renders the current screen, with the application form on top when open.
func (m *Model) View() string {
	var body string
	if m.screen == screenDetail {
		body = m.viewDetail()
	} else {
		body = m.viewList()
	}

	st := m.form.State()
	if !st.IsOpen() {
		return body
	}
	form := m.viewForm(st)
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, form)
	}
	return body + "\n" + form
}

func (m *Model) viewList() string {
	st := m.store.Snapshot()
	s := m.styles
	var b strings.Builder

	b.WriteString(s.title.Render("HireHub") + "  " + s.subtle.Render("Find your next role") + "\n\n")

	f := st.Filters
	b.WriteString(fmt.Sprintf("%s %s  %s %s  %s %s\n",
		s.label.Render("[c] Category:"), f.Category,
		s.label.Render("[l] Location:"), f.Location,
		s.label.Render("[e] Experience:"), f.Experience))
	b.WriteString(m.search.View() + "\n\n")

	switch {
	case st.IsLoading:
		b.WriteString(s.subtle.Render("Loading jobs...") + "\n")
	case st.Error != "":
		b.WriteString(s.errText.Render(st.Error) + "\n")
	case len(st.FilteredJobs) == 0:
		b.WriteString(s.subtle.Render("No jobs found matching your criteria.") + "\n")
		if !f.IsDefault() {
			b.WriteString(s.subtle.Render("Press r to reset filters.") + "\n")
		}
	default:
		b.WriteString(s.subtle.Render(fmt.Sprintf("Showing %d of %d jobs", len(st.FilteredJobs), len(st.Jobs))) + "\n\n")
		for i, job := range st.FilteredJobs {
			b.WriteString(m.renderRow(job, i == m.cursor) + "\n")
		}
	}

	if m.status != "" {
		b.WriteString("\n" + s.errText.Render(m.status) + "\n")
	}
	b.WriteString("\n" + s.help.Render("↑/↓ move · / search · c/l/e filters · r reset · enter details · a apply · q quit"))
	return b.String()
}

func (m *Model) renderRow(job types.Job, selected bool) string {
	line := fmt.Sprintf("%s %s  %s · %s · %s",
		job.LogoGlyph(), job.Title, job.Company, job.Location, job.ExperienceLevel)
	if selected {
		return m.styles.selected.Render("› " + line)
	}
	return "  " + line
}

func (m *Model) viewDetail() string {
	d := m.detail.Current()
	s := m.styles
	var b strings.Builder

	switch {
	case d.IsLoading:
		b.WriteString(s.subtle.Render("Loading job details...") + "\n")
	case d.NotFound:
		b.WriteString(s.errText.Render(store.NotFoundMessage) + "\n")
	case d.Error != "":
		b.WriteString(s.errText.Render(d.Error) + "\n")
	case d.Job != nil:
		b.WriteString(m.renderJob(d.Job))
	}

	b.WriteString("\n" + s.help.Render("a apply · esc back · q quit"))
	return b.String()
}

func (m *Model) renderJob(job *types.Job) string {
	s := m.styles
	var b strings.Builder

	b.WriteString(s.title.Render(job.Title) + "\n")
	b.WriteString(fmt.Sprintf("%s · %s\n", job.Company, job.Location))
	b.WriteString(s.badge.Render(string(job.JobType)) + s.badge.Render(string(job.ExperienceLevel)) +
		s.badge.Render(string(job.Category)) + "\n")
	b.WriteString(s.label.Render("Salary: ") + observability.FormatSalary(*job) + "\n")
	if job.PostedDate != "" {
		b.WriteString(s.subtle.Render("Posted "+job.PostedDate) + "\n")
	}
	b.WriteString("\n" + job.Description + "\n")

	sections := []struct {
		title string
		items []string
	}{
		{"Responsibilities", job.Responsibilities},
		{"Qualifications", job.Qualifications},
		{"Benefits", job.Benefits},
	}
	for _, sec := range sections {
		if len(sec.items) == 0 {
			continue
		}
		b.WriteString("\n" + s.label.Render(sec.title) + "\n")
		for _, item := range sec.items {
			b.WriteString("  • " + item + "\n")
		}
	}
	if job.CompanyDescription != "" {
		b.WriteString("\n" + s.label.Render("About "+job.Company) + "\n" + job.CompanyDescription + "\n")
	}
	return b.String()
}

func (m *Model) viewForm(st apply.State) string {
	s := m.styles
	var b strings.Builder

	title := "Apply"
	if st.Job != nil {
		title = "Apply for " + st.Job.Title
	}
	b.WriteString(s.title.Render(title) + "\n\n")

	switch st.Phase {
	case apply.PhaseSucceeded:
		b.WriteString(s.success.Render("Application Submitted!") + "\n")
		b.WriteString("We'll get back to you soon.\n")
		if st.Receipt != nil {
			b.WriteString(s.subtle.Render("Confirmation "+st.Receipt.ConfirmationID.String()) + "\n")
		}
		return s.panel.Render(b.String())
	case apply.PhaseSubmitting:
		b.WriteString(s.subtle.Render("Submitting...") + "\n\n")
	}

	fields := []struct {
		label string
		key   string
		index int
	}{
		{"Name", apply.FieldName, inputName},
		{"Email", apply.FieldEmail, inputEmail},
		{"Resume", apply.FieldResume, inputResume},
	}
	for _, f := range fields {
		b.WriteString(s.label.Render(f.label) + "\n")
		b.WriteString(m.inputs[f.index].View() + "\n")
		if msg, ok := st.Errors[f.key]; ok {
			b.WriteString(s.errText.Render(msg) + "\n")
		}
		b.WriteString("\n")
	}
	if st.SubmitError != "" {
		b.WriteString(s.errText.Render(st.SubmitError) + "\n")
	}
	if m.status != "" {
		b.WriteString(s.subtle.Render(m.status) + "\n")
	}
	b.WriteString(s.help.Render("tab next field · enter submit · esc cancel"))
	return s.panel.Render(b.String())
}
