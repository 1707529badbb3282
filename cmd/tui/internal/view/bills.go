package view

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/billsnap/billsnap/internal/bill"
	"github.com/billsnap/billsnap/internal/payment"
)

const recentBillsLimit = 50

type billsState int

const (
	billsStateList billsState = iota
	billsStateDetail
	billsStateConfirm
)

// billItem wraps a bill to implement list.Item.
type billItem struct {
	bill *bill.Bill
}

func (i billItem) Title() string {
	status := lipgloss.NewStyle().Faint(true).Render(fmt.Sprintf("[%s]", i.bill.Status))

	return fmt.Sprintf("%s  %s  %s  %s",
		FormatDate(i.bill.CreatedAt),
		FormatAmount(i.bill.StatedTotal),
		status,
		i.bill.Title,
	)
}

func (i billItem) Description() string {
	settled := 0
	for _, p := range i.bill.Participants {
		if p.IsSettled {
			settled++
		}
	}

	return fmt.Sprintf("share: %s  |  %d/%d settled", i.bill.ShareID, settled, len(i.bill.Participants))
}

func (i billItem) FilterValue() string {
	return i.bill.Title + " " + i.bill.RestaurantName
}

type BillsModel struct {
	CommonModel
	billService    *bill.Service
	paymentService *payment.Service

	state       billsState
	list        list.Model
	form        *huh.Form
	selected    *bill.Bill
	cursor      int
	loading     bool
	status      string
	formConfirm bool
}

func NewBillsModel(billSvc *bill.Service, paySvc *payment.Service) BillsModel {
	l := list.New([]list.Item{}, billItemDelegate{}, 0, 0)
	l.Title = "Recent Bills"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(true)

	return BillsModel{
		billService:    billSvc,
		paymentService: paySvc,
		list:           l,
		loading:        true,
	}
}

func (m BillsModel) Title() string { return "Browse Bills" }

func (m BillsModel) ShortHelp() string {
	switch m.state {
	case billsStateList:
		return "Esc: back | Enter: open | /: filter"
	case billsStateDetail:
		return "Esc: back | ↑/↓: select participant | p: mark paid"
	case billsStateConfirm:
		return "Esc: cancel | Enter: confirm"
	}

	return ""
}

func (m BillsModel) Init() tea.Cmd {
	return m.loadBillsCmd()
}

func (m BillsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadBillsMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.refreshListItems(msg.bills)

		if len(msg.bills) == 0 {
			m.status = "No bills yet."
		}

		return m, nil

	case markPaidResultMsg:
		m.state = billsStateDetail
		m.form = nil

		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.status = "Marked as paid."
		m.loading = true

		return m, m.loadBillsCmd()

	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width-4, msg.Height-8)
		return m, nil
	}

	switch m.state {
	case billsStateList:
		return m.updateList(msg)
	case billsStateDetail:
		return m.updateDetail(msg)
	case billsStateConfirm:
		return m.updateConfirm(msg)
	}

	return m, nil
}

func (m BillsModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEsc:
			if m.list.FilterState() == list.Filtering {
				break // let the list handle it (close filter)
			}

			return m, Back
		case tea.KeyEnter:
			if m.list.FilterState() == list.Filtering {
				break // let the list handle it (confirm filter)
			}

			selected, ok := m.list.SelectedItem().(billItem)
			if !ok {
				return m, nil
			}

			m.selected = selected.bill
			m.cursor = 0
			m.state = billsStateDetail
			m.status = ""

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m BillsModel) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		m.state = billsStateList
		m.selected = nil
		m.status = ""

		return m, nil
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.selected.Participants)-1 {
			m.cursor++
		}
	case "p":
		return m.startMarkPaid()
	}

	return m, nil
}

func (m BillsModel) startMarkPaid() (tea.Model, tea.Cmd) {
	if m.selected == nil || len(m.selected.Participants) == 0 {
		return m, nil
	}

	p := m.selected.Participants[m.cursor]
	if p.IsSettled {
		m.status = fmt.Sprintf("%s has already settled.", p.DisplayName)
		return m, nil
	}

	m.formConfirm = false
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("confirm").
				Title(fmt.Sprintf("Mark %s (%s) as paid?", p.DisplayName, FormatAmount(p.OwedShare))).
				Affirmative("Yes").
				Negative("No").
				Value(&m.formConfirm),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = billsStateConfirm

	return m, m.form.Init()
}

func (m BillsModel) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = billsStateDetail
			m.form = nil

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

	if !m.formConfirm {
		m.state = billsStateDetail
		m.form = nil

		return m, nil
	}

	return m, m.markPaidCmd()
}

func (m BillsModel) View() string {
	switch m.state {
	case billsStateList:
		if m.loading {
			return lipgloss.NewStyle().Padding(2).Render("Loading bills...")
		}

		statusLine := ""
		if m.status != "" {
			statusLine = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n"
		}

		return lipgloss.NewStyle().Padding(1).Render(statusLine + m.list.View())

	case billsStateDetail:
		return lipgloss.NewStyle().Padding(1).Render(m.detailView())

	case billsStateConfirm:
		if m.form == nil {
			return ""
		}

		return lipgloss.NewStyle().Padding(1).Render(
			m.billInfoView() + "\n" + m.form.View(),
		)
	}

	return ""
}

func (m BillsModel) detailView() string {
	if m.selected == nil {
		return ""
	}

	var sb strings.Builder

	sb.WriteString(m.billInfoView())
	sb.WriteString("\n\nItems:\n")

	for _, it := range m.selected.Items {
		sb.WriteString(fmt.Sprintf("  %dx %-30s %s\n", it.Quantity, it.Name, FormatAmount(it.ExtendedPrice())))
	}

	sb.WriteString("\nParticipants:\n")

	if len(m.selected.Participants) == 0 {
		sb.WriteString(lipgloss.NewStyle().Faint(true).Render("  Nobody has joined yet.") + "\n")
	}

	for i, p := range m.selected.Participants {
		mark := " "
		if p.IsSettled {
			mark = "✓"
		}

		line := fmt.Sprintf("[%s] %-20s owes %s", mark, p.DisplayName, FormatAmount(p.OwedShare))

		if i == m.cursor {
			line = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Render("> " + line)
		} else {
			line = "  " + line
		}

		sb.WriteString(line + "\n")
	}

	if m.status != "" {
		sb.WriteString("\n" + lipgloss.NewStyle().Faint(true).Render(m.status))
	}

	sb.WriteString("\n" + lipgloss.NewStyle().Faint(true).Render(m.ShortHelp()))

	return sb.String()
}

func (m BillsModel) billInfoView() string {
	if m.selected == nil {
		return ""
	}

	restaurant := m.selected.RestaurantName
	if restaurant == "" {
		restaurant = "-"
	}

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Render(fmt.Sprintf(
			"%s  |  %s  |  Total: %s\nShare link token: %s",
			m.selected.Title,
			restaurant,
			FormatAmount(m.selected.StatedTotal),
			m.selected.ShareID,
		))
}

func (m *BillsModel) refreshListItems(bills []*bill.Bill) {
	items := make([]list.Item, len(bills))
	for i, b := range bills {
		items[i] = billItem{bill: b}
	}

	m.list.SetItems(items)

	// Keep the open detail fresh after a reload.
	if m.selected != nil {
		for _, b := range bills {
			if b.ID == m.selected.ID {
				m.selected = b
				break
			}
		}

		if m.cursor >= len(m.selected.Participants) && m.cursor > 0 {
			m.cursor = len(m.selected.Participants) - 1
		}
	}
}

// Messages

type loadBillsMsg struct {
	bills []*bill.Bill
	err   error
}

func (m BillsModel) loadBillsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		bills, err := m.billService.ListRecent(ctx, recentBillsLimit)

		return loadBillsMsg{bills: bills, err: err}
	}
}

type markPaidResultMsg struct {
	err error
}

func (m BillsModel) markPaidCmd() tea.Cmd {
	shareID := m.selected.ShareID
	participantID := m.selected.Participants[m.cursor].ID
	paySvc := m.paymentService

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return markPaidResultMsg{err: paySvc.SelfReport(ctx, shareID, participantID)}
	}
}

// billItemDelegate renders items in the list.
type billItemDelegate struct{}

func (d billItemDelegate) Height() int                             { return 2 }
func (d billItemDelegate) Spacing() int                            { return 0 }
func (d billItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d billItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(billItem)
	if !ok {
		return
	}

	isSelected := index == m.Index()

	title := i.Title()
	desc := i.Description()

	if isSelected {
		title = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Render("> " + title)
	}

	fmt.Fprintf(w, "  %s\n", title)
	fmt.Fprintf(w, "    %s\n", lipgloss.NewStyle().Faint(true).Render(desc))
}
