package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Styling
var (
	docStyle = lipgloss.NewStyle().Margin(1, 2)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#0a84ff")).
			Padding(0, 1)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#30d158")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#ff453a")).
			Padding(0, 1)
)

// Model defines the application state
type Model struct {
	mainMenu     list.Model
	missingTable table.Model
	waiterTable  table.Model
	kitchenTable table.Model
	dateInput    textinput.Model
	spinner      spinner.Model
	client       *ApiClient
	loading      bool
	currentView  string
	status       string
	error        string
	missing      *MissingReport
	rotation     *RotationInfo
}

// item represents a list item
type item struct {
	title, desc string
}

// FilterValue implements list.Item interface
func (i item) FilterValue() string { return i.title }

// Title implements list.Item interface
func (i item) Title() string { return i.title }

// Description implements list.Item interface
func (i item) Description() string { return i.desc }

// Initialize the model
func initialModel() Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	items := []list.Item{
		item{title: "Missing Orders", desc: "Guests without a submitted menu for tomorrow"},
		item{title: "Assign Defaults", desc: "Fill every missing guest with the default dishes"},
		item{title: "Waiter Sheet", desc: "Compact per-table dish list"},
		item{title: "Kitchen Summary", desc: "Per-dish portion totals"},
		item{title: "Exit", desc: "Exit the application"},
	}
	mainMenu := list.New(items, list.NewDefaultDelegate(), 0, 0)
	mainMenu.Title = "Dining Hall CLI"

	missingTable := table.New(
		table.WithColumns([]table.Column{
			{Title: "Diet", Width: 6},
			{Title: "Guest", Width: 28},
			{Title: "Table", Width: 7},
			{Title: "Place", Width: 7},
		}),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	waiterTable := table.New(
		table.WithColumns([]table.Column{
			{Title: "Meal", Width: 10},
			{Title: "Dish", Width: 30},
			{Title: "Qty", Width: 5},
			{Title: "Tables", Width: 30},
		}),
		table.WithFocused(true),
		table.WithHeight(14),
	)

	kitchenTable := table.New(
		table.WithColumns([]table.Column{
			{Title: "Dish", Width: 32},
			{Title: "Portions", Width: 10},
			{Title: "Tables", Width: 30},
		}),
		table.WithFocused(true),
		table.WithHeight(14),
	)

	ti := textinput.New()
	ti.Placeholder = "YYYY-MM-DD (empty = open window)"
	ti.CharLimit = 10
	ti.Width = 34

	return Model{
		mainMenu:     mainMenu,
		missingTable: missingTable,
		waiterTable:  waiterTable,
		kitchenTable: kitchenTable,
		dateInput:    ti,
		spinner:      s,
		client:       NewApiClient(),
		currentView:  "main",
	}
}

// Messages from the API commands

type missingMsg struct {
	report   *MissingReport
	rotation *RotationInfo
	err      error
}

type assignMsg struct {
	result *AssignResult
	err    error
}

type waiterMsg struct {
	report *WaiterReport
	err    error
}

type kitchenMsg struct {
	report *KitchenReport
	err    error
}

func (m Model) fetchMissing(date string) tea.Cmd {
	return func() tea.Msg {
		report, err := m.client.GetMissing(date)
		if err != nil {
			return missingMsg{err: err}
		}
		rotation, _ := m.client.ResolveRotation(report.Date)
		return missingMsg{report: report, rotation: rotation}
	}
}

func (m Model) runAssign(date string) tea.Cmd {
	return func() tea.Msg {
		result, err := m.client.AssignDefaults(date, "all")
		return assignMsg{result: result, err: err}
	}
}

func (m Model) fetchWaiter(date string) tea.Cmd {
	return func() tea.Msg {
		report, err := m.client.GetWaiterReport(date, 1, 100)
		return waiterMsg{report: report, err: err}
	}
}

func (m Model) fetchKitchen(date string) tea.Cmd {
	return func() tea.Msg {
		report, err := m.client.GetKitchenReport(date)
		return kitchenMsg{report: report, err: err}
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.mainMenu.SetSize(msg.Width-h, msg.Height-v)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.currentView != "main" {
				m.currentView = "main"
				m.error = ""
				m.status = ""
				return m, nil
			}
		case "enter":
			if m.currentView == "main" {
				return m.selectMenuItem()
			}
			if m.currentView == "date" {
				date := m.dateInput.Value()
				m.loading = true
				m.currentView = "missing"
				return m, tea.Batch(m.spinner.Tick, m.fetchMissing(date))
			}
		case "a":
			// Assign defaults straight from the missing board
			if m.currentView == "missing" && m.missing != nil {
				m.loading = true
				return m, tea.Batch(m.spinner.Tick, m.runAssign(m.missing.Date))
			}
		case "d":
			// Pick another report date for the missing board
			if m.currentView == "missing" {
				m.currentView = "date"
				m.dateInput.SetValue("")
				m.dateInput.Focus()
				return m, nil
			}
		case "r":
			if m.currentView == "missing" {
				m.loading = true
				date := ""
				if m.missing != nil {
					date = m.missing.Date
				}
				return m, tea.Batch(m.spinner.Tick, m.fetchMissing(date))
			}
		}

	case missingMsg:
		m.loading = false
		if msg.err != nil {
			m.error = msg.err.Error()
			return m, nil
		}
		m.error = ""
		m.missing = msg.report
		m.rotation = msg.rotation
		m.missingTable.SetRows(missingRows(msg.report))
		return m, nil

	case assignMsg:
		m.loading = false
		if msg.err != nil {
			m.error = msg.err.Error()
			return m, nil
		}
		m.error = ""
		if msg.result.Message != "" {
			m.status = msg.result.Message
		} else {
			m.status = fmt.Sprintf("Assigned defaults to %d guests", msg.result.Updated)
		}
		return m, m.fetchMissing(msg.result.Date)

	case waiterMsg:
		m.loading = false
		if msg.err != nil {
			m.error = msg.err.Error()
			return m, nil
		}
		m.error = ""
		m.status = "Waiter sheet for " + msg.report.Date
		m.waiterTable.SetRows(waiterRows(msg.report))
		return m, nil

	case kitchenMsg:
		m.loading = false
		if msg.err != nil {
			m.error = msg.err.Error()
			return m, nil
		}
		m.error = ""
		m.status = "Kitchen summary for " + msg.report.Date
		m.kitchenTable.SetRows(kitchenRows(msg.report))
		return m, nil

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch m.currentView {
	case "main":
		m.mainMenu, cmd = m.mainMenu.Update(msg)
	case "date":
		m.dateInput, cmd = m.dateInput.Update(msg)
	case "missing":
		m.missingTable, cmd = m.missingTable.Update(msg)
	case "waiter":
		m.waiterTable, cmd = m.waiterTable.Update(msg)
	case "kitchen":
		m.kitchenTable, cmd = m.kitchenTable.Update(msg)
	}
	return m, cmd
}

func (m Model) selectMenuItem() (tea.Model, tea.Cmd) {
	selected, ok := m.mainMenu.SelectedItem().(item)
	if !ok {
		return m, nil
	}
	switch selected.title {
	case "Missing Orders":
		m.loading = true
		m.currentView = "missing"
		return m, tea.Batch(m.spinner.Tick, m.fetchMissing(""))
	case "Assign Defaults":
		m.loading = true
		m.currentView = "missing"
		return m, tea.Batch(m.spinner.Tick, m.fetchMissing(""))
	case "Waiter Sheet":
		m.loading = true
		m.currentView = "waiter"
		return m, tea.Batch(m.spinner.Tick, m.fetchWaiter(""))
	case "Kitchen Summary":
		m.loading = true
		m.currentView = "kitchen"
		return m, tea.Batch(m.spinner.Tick, m.fetchKitchen(""))
	case "Exit":
		return m, tea.Quit
	}
	return m, nil
}

func missingRows(report *MissingReport) []table.Row {
	diets := make([]string, 0, len(report.ByDiet))
	for diet := range report.ByDiet {
		diets = append(diets, diet)
	}
	sort.Strings(diets)

	var rows []table.Row
	for _, diet := range diets {
		for _, g := range report.ByDiet[diet] {
			rows = append(rows, table.Row{
				diet,
				g.FullName,
				strconv.Itoa(g.Table),
				strconv.Itoa(g.Place),
			})
		}
	}
	return rows
}

func waiterRows(report *WaiterReport) []table.Row {
	var rows []table.Row
	for _, block := range report.Meals {
		for _, r := range block.Rows {
			rows = append(rows, table.Row{block.Meal, r.Dish, strconv.Itoa(r.Total), r.Tables})
		}
	}
	return rows
}

func kitchenRows(report *KitchenReport) []table.Row {
	var rows []table.Row
	for _, d := range report.Dishes {
		tables := ""
		for i, n := range d.Tables {
			if i > 0 {
				tables += ", "
			}
			tables += strconv.Itoa(n)
		}
		rows = append(rows, table.Row{d.Dish, strconv.Itoa(d.Total), tables})
	}
	return rows
}

// View renders the current state
func (m Model) View() string {
	if m.loading {
		return docStyle.Render(fmt.Sprintf("%s Loading...", m.spinner.View()))
	}

	var body string
	switch m.currentView {
	case "main":
		return docStyle.Render(m.mainMenu.View())
	case "date":
		body = titleStyle.Render("Report date") + "\n\n" + m.dateInput.View() + "\n\n(enter to load, esc to go back)"
	case "missing":
		header := titleStyle.Render("Missing Orders")
		if m.missing != nil {
			header += " " + infoStyle.Render(fmt.Sprintf("%s — %d guests", m.missing.Date, m.missing.TotalMissing))
			if m.rotation != nil && m.rotation.CycleName != "" {
				header += " " + infoStyle.Render(fmt.Sprintf("%s, day %d", m.rotation.CycleName, m.rotation.DayIndex))
			}
		}
		body = header + "\n\n" + m.missingTable.View() + "\n\n(a: assign defaults, r: refresh, d: change date, esc: back)"
	case "waiter":
		body = titleStyle.Render("Waiter Sheet") + "\n\n" + m.waiterTable.View() + "\n\n(esc: back)"
	case "kitchen":
		body = titleStyle.Render("Kitchen Summary") + "\n\n" + m.kitchenTable.View() + "\n\n(esc: back)"
	}

	if m.status != "" {
		body += "\n" + successStyle.Render(m.status)
	}
	if m.error != "" {
		body += "\n" + errorStyle.Render("Error: "+m.error)
	}
	return docStyle.Render(body)
}

func main() {
	p := tea.NewProgram(initialModel(), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
