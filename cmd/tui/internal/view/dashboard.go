package view

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/MrJamesThe3rd/salesdash/internal/dashboard"
)

type dashboardMode int

const (
	modeBrowse dashboardMode = iota
	modeSearch
	modeMonth
)

const barWidth = 40

var _ View = DashboardModel{}

type DashboardOptions struct {
	PerPage      int
	Month        int
	Debounce     time.Duration // zero fetches on every keystroke
	FetchTimeout time.Duration
	Locale       dashboard.Locale
}

type DashboardModel struct {
	CommonModel

	src     dashboard.Source
	tracker *dashboard.Tracker
	opts    DashboardOptions

	state dashboard.State
	data  dashboard.Data
	mode  dashboardMode

	search  textinput.Model
	form    *huh.Form
	spinner spinner.Model

	// debounceSeq identifies the newest pending search fetch.
	debounceSeq   int
	searchPending bool
}

func NewDashboardModel(src dashboard.Source, opts DashboardOptions) DashboardModel {
	if opts.PerPage < 1 {
		opts.PerPage = dashboard.DefaultPageSize
	}

	ti := textinput.New()
	ti.Placeholder = "Search transactions"
	ti.Prompt = "/ "
	ti.CharLimit = 100
	ti.Width = 40

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return DashboardModel{
		src:     src,
		tracker: &dashboard.Tracker{},
		opts:    opts,
		state:   dashboard.NewState(opts.Month),
		search:  ti,
		spinner: s,
	}
}

func (m DashboardModel) Title() string {
	return "Transactions Dashboard"
}

func (m DashboardModel) ShortHelp() string {
	switch m.mode {
	case modeSearch:
		return "enter/esc: done"
	case modeMonth:
		return "enter: select • esc: cancel"
	default:
		return "/: search • m: month • ←/p: prev • →/n: next • r: refresh • q: quit"
	}
}

func (m DashboardModel) Init() tea.Cmd {
	_, cmd := m.fetch(dashboard.KindTransactions, dashboard.KindStatistics, dashboard.KindHistogram)
	return cmd
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case transactionsMsg:
		return m.onTransactions(msg)

	case statisticsMsg:
		if !m.tracker.Finish(msg.ticket) {
			return m, nil
		}

		m.data.Statistics = nil
		if msg.err != nil {
			slog.Warn("failed to fetch statistics", "month", m.state.Month, "error", msg.err)
		} else {
			m.data.Statistics = msg.stats
		}

		return m, nil

	case histogramMsg:
		if !m.tracker.Finish(msg.ticket) {
			return m, nil
		}

		m.data.Histogram = nil
		if msg.err != nil {
			slog.Warn("failed to fetch histogram", "month", m.state.Month, "error", msg.err)
		} else {
			m.data.Histogram = msg.buckets
		}

		return m, nil

	case searchDebounceMsg:
		if msg.seq != m.debounceSeq || !m.searchPending {
			return m, nil
		}

		m.searchPending = false
		return m.fetch(dashboard.KindTransactions, dashboard.KindStatistics, dashboard.KindHistogram)

	case spinner.TickMsg:
		if m.tracker.Pending() == 0 {
			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "ctrl+c" {
		m.tracker.Stop()
		return m, tea.Quit
	}

	switch m.mode {
	case modeSearch:
		return m.updateSearch(msg)
	case modeMonth:
		return m.updateMonth(msg)
	default:
		return m.updateBrowse(msg)
	}
}

func (m DashboardModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "q":
		m.tracker.Stop()
		return m, tea.Quit
	case "/":
		m.mode = modeSearch
		return m, m.search.Focus()
	case "m":
		m.mode = modeMonth
		m.form = m.buildMonthForm()
		return m, m.form.Init()
	case "left", "p":
		return m.apply(dashboard.PrevPage{})
	case "right", "n":
		return m.apply(dashboard.NextPage{})
	case "r":
		return m.fetch(dashboard.KindTransactions, dashboard.KindStatistics, dashboard.KindHistogram)
	}

	return m, nil
}

func (m DashboardModel) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEnter, tea.KeyEsc:
			m.mode = modeBrowse
			m.search.Blur()

			if m.searchPending {
				m.searchPending = false
				m.debounceSeq++
				return m.fetch(dashboard.KindTransactions, dashboard.KindStatistics, dashboard.KindHistogram)
			}

			return m, nil
		}
	}

	var inputCmd tea.Cmd
	m.search, inputCmd = m.search.Update(msg)

	next, changed := m.state.Apply(dashboard.ChangeSearch{Search: m.search.Value()})
	if !changed {
		return m, inputCmd
	}

	// The page reset is immediate; only the fetch waits for typing to settle.
	m.state = next

	if m.opts.Debounce <= 0 {
		model, fetchCmd := m.fetch(dashboard.KindTransactions, dashboard.KindStatistics, dashboard.KindHistogram)
		return model, tea.Batch(inputCmd, fetchCmd)
	}

	m.debounceSeq++
	m.searchPending = true
	seq := m.debounceSeq

	return m, tea.Batch(inputCmd, tea.Tick(m.opts.Debounce, func(time.Time) tea.Msg {
		return searchDebounceMsg{seq: seq}
	}))
}

func (m DashboardModel) updateMonth(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.mode = modeBrowse
		m.form = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		month := m.form.GetInt("month")
		m.mode = modeBrowse
		m.form = nil
		return m.selectMonth(month)
	case huh.StateAborted:
		m.mode = modeBrowse
		m.form = nil
		return m, nil
	}

	return m, cmd
}

func (m DashboardModel) selectMonth(month int) (tea.Model, tea.Cmd) {
	return m.apply(dashboard.SelectMonth{Month: month})
}

// apply moves the state and refetches everything when the parameters changed.
func (m DashboardModel) apply(e dashboard.Event) (tea.Model, tea.Cmd) {
	next, changed := m.state.Apply(e)
	if !changed {
		return m, nil
	}

	m.state = next

	return m.fetch(dashboard.KindTransactions, dashboard.KindStatistics, dashboard.KindHistogram)
}

func (m DashboardModel) onTransactions(msg transactionsMsg) (tea.Model, tea.Cmd) {
	if !m.tracker.Finish(msg.ticket) {
		return m, nil
	}

	m.data.Transactions = nil
	m.data.TotalPages = 0

	if msg.err != nil {
		slog.Warn("failed to fetch transactions", "month", m.state.Month, "page", m.state.Page, "error", msg.err)
	} else if msg.page != nil {
		m.data.Transactions = msg.page.Items
		m.data.TotalPages = msg.page.TotalPages
	}

	next, changed := m.state.Apply(dashboard.PagesReported{TotalPages: m.data.TotalPages})
	m.state = next

	if changed {
		return m.fetch(dashboard.KindTransactions)
	}

	return m, nil
}

func (m DashboardModel) buildMonthForm() *huh.Form {
	options := make([]huh.Option[int], len(dashboard.Months))
	for i, label := range dashboard.Months {
		options[i] = huh.NewOption(label, i+1)
	}

	month := m.state.Month

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Key("month").
				Title("Month").
				Options(options...).
				Height(8).
				Value(&month),
		),
	).WithWidth(30).WithShowHelp(false)
}

func (m DashboardModel) View() string {
	v := dashboard.Render(m.state, m.data, m.opts.Locale)

	title := lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("%s · %s", m.Title(), v.MonthLabel))
	if m.tracker.Pending() > 0 {
		title += " " + m.spinner.View()
	}

	searchLine := m.search.View()
	if m.mode != modeSearch && v.Search == "" {
		searchLine = lipgloss.NewStyle().Faint(true).Render("Press / to search")
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(title),
		searchLine,
		"",
		renderCards(v.Cards),
		renderTable(v.Rows, m.Width),
		renderPager(v.Pager),
		"",
		renderBars(v.Bars),
	)

	if m.mode == modeMonth && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Render(m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	help := lipgloss.NewStyle().Faint(true).Render(m.ShortHelp())

	return lipgloss.NewStyle().Padding(1).Render(content + "\n\n" + help)
}

var (
	cardStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 2).
			MarginRight(1)
	positiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	negativeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	disabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	activeKey     = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
)

func renderCards(cards []dashboard.Card) string {
	boxes := make([]string, len(cards))
	for i, c := range cards {
		boxes[i] = cardStyle.Render(
			lipgloss.NewStyle().Faint(true).Render(c.Title) + "\n" +
				lipgloss.NewStyle().Bold(true).Render(c.Value),
		)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

func renderTable(rows []dashboard.Row, width int) string {
	cells := make([][]string, len(rows))
	for i, r := range rows {
		cells[i] = []string{
			r.ID,
			truncate(r.Title, 24),
			truncate(r.Description, 32),
			r.Price,
			truncate(r.Category, 16),
			r.Sold.Text,
			r.Date,
		}
	}

	if len(cells) == 0 {
		return lipgloss.NewStyle().Faint(true).Padding(1, 0).Render("No transactions found.")
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("ID", "Title", "Description", "Price", "Category", "Sold", "Date").
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1)

			if row == table.HeaderRow {
				return style.Bold(true).Foreground(lipgloss.Color("229"))
			}

			if row >= 0 && row < len(rows) {
				if rows[row].Shaded {
					style = style.Foreground(lipgloss.Color("250"))
				}

				if col == 5 {
					if rows[row].Sold.Class == dashboard.BadgePositive {
						return style.Inherit(positiveStyle)
					}

					return style.Inherit(negativeStyle)
				}
			}

			return style
		})

	if width > 4 {
		t = t.Width(width - 4)
	}

	return t.String()
}

func renderPager(p dashboard.Pager) string {
	prev := activeKey.Render("[←/p] Previous")
	if p.PrevDisabled {
		prev = disabledStyle.Render("[←/p] Previous")
	}

	next := activeKey.Render("[→/n] Next")
	if p.NextDisabled {
		next = disabledStyle.Render("[→/n] Next")
	}

	return fmt.Sprintf("%s   Page %d of %d   %s", prev, p.Page, max(p.TotalPages, 1), next)
}

func renderBars(bars []dashboard.Bar) string {
	if len(bars) == 0 {
		return lipgloss.NewStyle().Faint(true).Render("No price data.")
	}

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Transaction Distribution"))
	b.WriteString("\n")

	for _, bar := range bars {
		n := bar.Percent * barWidth / 100
		if bar.Count > 0 && n == 0 {
			n = 1
		}

		fill := lipgloss.NewStyle().Foreground(lipgloss.Color(bar.Color)).Render(strings.Repeat("█", n))
		fmt.Fprintf(&b, "%-10s %s %d\n", bar.Range, fill, bar.Count)
	}

	return strings.TrimRight(b.String(), "\n")
}

// Messages

type transactionsMsg struct {
	ticket dashboard.Ticket
	page   *dashboard.Page
	err    error
}

type statisticsMsg struct {
	ticket dashboard.Ticket
	stats  *dashboard.Statistics
	err    error
}

type histogramMsg struct {
	ticket  dashboard.Ticket
	buckets []dashboard.Bucket
	err     error
}

type searchDebounceMsg struct {
	seq int
}

// fetch supersedes any in-flight request of the given kinds. Tickets are taken
// here so that responses to older requests are recognised as stale.
func (m DashboardModel) fetch(kinds ...dashboard.Kind) (DashboardModel, tea.Cmd) {
	idle := m.tracker.Pending() == 0
	req := m.state.Requests(m.opts.PerPage)

	cmds := make([]tea.Cmd, 0, len(kinds)+1)

	for _, kind := range kinds {
		ctx, ticket := m.tracker.Begin(context.Background(), kind)

		switch kind {
		case dashboard.KindTransactions:
			cmds = append(cmds, m.transactionsCmd(ctx, ticket, req.Transactions))
		case dashboard.KindStatistics:
			cmds = append(cmds, m.statisticsCmd(ctx, ticket, req.Statistics))
		case dashboard.KindHistogram:
			cmds = append(cmds, m.histogramCmd(ctx, ticket, req.Histogram))
		}
	}

	if idle {
		cmds = append(cmds, m.spinner.Tick)
	}

	return m, tea.Batch(cmds...)
}

func (m DashboardModel) transactionsCmd(ctx context.Context, ticket dashboard.Ticket, q dashboard.Query) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := FetchCtx(ctx, m.opts.FetchTimeout)
		defer cancel()

		page, err := m.src.FetchTransactionsPage(ctx, q)
		return transactionsMsg{ticket: ticket, page: page, err: err}
	}
}

func (m DashboardModel) statisticsCmd(ctx context.Context, ticket dashboard.Ticket, month int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := FetchCtx(ctx, m.opts.FetchTimeout)
		defer cancel()

		stats, err := m.src.FetchStatistics(ctx, month)
		return statisticsMsg{ticket: ticket, stats: stats, err: err}
	}
}

func (m DashboardModel) histogramCmd(ctx context.Context, ticket dashboard.Ticket, month int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := FetchCtx(ctx, m.opts.FetchTimeout)
		defer cancel()

		buckets, err := m.src.FetchHistogram(ctx, month)
		return histogramMsg{ticket: ticket, buckets: buckets, err: err}
	}
}
