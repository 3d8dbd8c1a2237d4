package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	commitmentdto "focuslock/internal/modules/commitment/dto"
	profiledto "focuslock/internal/modules/profile/dto"
	registrydto "focuslock/internal/modules/registry/dto"
	sessiondto "focuslock/internal/modules/session/dto"
	treasurydto "focuslock/internal/modules/treasury/dto"
	"focuslock/internal/ui/theme"
)

// Each port is the minimal slice of a usecase this view reads from.

type RegistryPort interface {
	Get(ctx context.Context) (registrydto.RegistryOutput, error)
}

type ProfilePort interface {
	Get(ctx context.Context, owner string) (profiledto.ProfileOutput, error)
}

type CommitmentPort interface {
	List(ctx context.Context, owner string) ([]commitmentdto.CommitmentOutput, error)
}

type SessionPort interface {
	List(ctx context.Context, owner string, commitmentID uint64) ([]sessiondto.SessionOutput, error)
}

type TreasuryPort interface {
	Balance(ctx context.Context, address string) (treasurydto.BalanceOutput, error)
}

type StateLoadedMsg struct {
	Registry    registrydto.RegistryOutput
	Profile     profiledto.ProfileOutput
	Balance     treasurydto.BalanceOutput
	Commitments []commitmentdto.CommitmentOutput
	Err         error
}

type SessionsLoadedMsg struct {
	CommitmentID uint64
	Sessions     []sessiondto.SessionOutput
	Err          error
}

type Model struct {
	registry   RegistryPort
	profile    ProfilePort
	commitment CommitmentPort
	session    SessionPort
	treasury   TreasuryPort

	actor string
	width int

	spinner  spinner.Model
	loading  bool
	loadErr  error
	state    StateLoadedMsg
	sessions []sessiondto.SessionOutput
	selected int
}

func New(registry RegistryPort, profile ProfilePort, commitment CommitmentPort, session SessionPort, treasury TreasuryPort, actor string) Model {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)
	return Model{
		registry:   registry,
		profile:    profile,
		commitment: commitment,
		session:    session,
		treasury:   treasury,
		actor:      actor,
		spinner:    sp,
		loading:    true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.Reload())
}

// Reload fetches everything the dashboard shows in one command.
func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		msg := StateLoadedMsg{}
		registry, err := m.registry.Get(ctx)
		if err != nil {
			msg.Err = err
			return msg
		}
		msg.Registry = registry
		if profile, err := m.profile.Get(ctx, m.actor); err == nil {
			msg.Profile = profile
		}
		if balance, err := m.treasury.Balance(ctx, m.actor); err == nil {
			msg.Balance = balance
		}
		commitments, err := m.commitment.List(ctx, m.actor)
		if err != nil {
			msg.Err = err
			return msg
		}
		msg.Commitments = commitments
		return msg
	}
}

func (m Model) loadSessions(commitmentID uint64) tea.Cmd {
	return func() tea.Msg {
		sessions, err := m.session.List(context.Background(), m.actor, commitmentID)
		return SessionsLoadedMsg{CommitmentID: commitmentID, Sessions: sessions, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case StateLoadedMsg:
		m.loading = false
		m.loadErr = msg.Err
		if msg.Err != nil {
			return m, nil
		}
		m.state = msg
		if m.selected >= len(msg.Commitments) {
			m.selected = 0
		}
		if len(msg.Commitments) > 0 {
			return m, m.loadSessions(msg.Commitments[m.selected].CommitmentID)
		}
		m.sessions = nil
		return m, nil
	case SessionsLoadedMsg:
		if msg.Err == nil {
			m.sessions = msg.Sessions
		}
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, m.Reload())
		case "j", "down":
			if m.selected+1 < len(m.state.Commitments) {
				m.selected++
				return m, m.loadSessions(m.state.Commitments[m.selected].CommitmentID)
			}
		case "k", "up":
			if m.selected > 0 {
				m.selected--
				return m, m.loadSessions(m.state.Commitments[m.selected].CommitmentID)
			}
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.loading {
		return theme.Pane.Render(m.spinner.View() + " loading protocol state")
	}
	if m.loadErr != nil {
		return theme.Pane.Render(theme.Bad.Render("error: ") + m.loadErr.Error())
	}

	top := lipgloss.JoinHorizontal(lipgloss.Top, m.registryPane(), m.profilePane())
	return lipgloss.JoinVertical(lipgloss.Left, top, m.commitmentsPane(), m.sessionsPane())
}

func (m Model) registryPane() string {
	r := m.state.Registry
	var b strings.Builder
	b.WriteString(theme.Title.Render("Registry") + "\n")
	b.WriteString(fmt.Sprintf("asset         %s\n", r.AssetID))
	b.WriteString(fmt.Sprintf("reward rate   %d%%\n", r.RewardRatePercent))
	b.WriteString(fmt.Sprintf("participants  %d\n", r.TotalParticipants))
	b.WriteString(fmt.Sprintf("value staked  %d", r.TotalValueStaked))
	return theme.Pane.Render(b.String())
}

func (m Model) profilePane() string {
	p := m.state.Profile
	var b strings.Builder
	b.WriteString(theme.Title.Render(m.actor) + "\n")
	b.WriteString(fmt.Sprintf("balance   %d\n", m.state.Balance.Balance))
	b.WriteString(fmt.Sprintf("sessions  %d\n", p.TotalSessionsCompleted))
	b.WriteString(fmt.Sprintf("rewards   %d\n", p.TotalRewardsEarned))
	streak := fmt.Sprintf("streak    %d (best %d)", p.CurrentStreak, p.BestStreak)
	if p.CurrentStreak > 0 && p.CurrentStreak == p.BestStreak {
		b.WriteString(theme.Good.Render(streak))
	} else {
		b.WriteString(streak)
	}
	return theme.Pane.Render(b.String())
}

func (m Model) commitmentsPane() string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Commitments") + "\n")
	if len(m.state.Commitments) == 0 {
		b.WriteString(theme.Muted.Render("none open — stake one with `focuslock commitment open`"))
		return theme.Pane.Render(b.String())
	}
	for i, c := range m.state.Commitments {
		cursor := "  "
		if i == m.selected {
			cursor = theme.Warn.Render("> ")
		}
		required := uint64(c.SessionsPerDay) * uint64(c.TotalDays)
		line := fmt.Sprintf("#%d  stake %d  %d/day × %dd  %d/%d done  today %d/%d",
			c.CommitmentID, c.AmountStaked, c.SessionsPerDay, c.TotalDays,
			c.TotalSessionsCompleted, required, c.SessionsCompletedToday, c.SessionsPerDay)
		if !c.IsActive {
			line += theme.Muted.Render("  settled")
		} else if time.Now().After(c.EndTimestamp) {
			line += theme.Good.Render("  claimable")
		}
		b.WriteString(cursor + line + "\n")
	}
	return theme.PaneActive.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) sessionsPane() string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Sessions") + "\n")
	if len(m.sessions) == 0 {
		b.WriteString(theme.Muted.Render("no sessions recorded for this commitment"))
		return theme.Pane.Render(b.String())
	}
	for _, s := range m.sessions {
		status := theme.Warn.Render("open")
		length := "-"
		if s.Completed {
			status = theme.Good.Render("done")
			length = s.EndedAt.Sub(s.StartedAt).Round(time.Minute).String()
		}
		b.WriteString(fmt.Sprintf("#%-3d %s  started %s  length %s\n",
			s.SessionID, status, s.StartedAt.Format("Jan 02 15:04"), length))
	}
	return theme.Pane.Render(strings.TrimRight(b.String(), "\n"))
}
