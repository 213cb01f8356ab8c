package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/commerce-console/internal/access"
	"github.com/MKhiriev/commerce-console/internal/logger"
	"github.com/MKhiriev/commerce-console/internal/service"
	"github.com/MKhiriev/commerce-console/models"
)

type TUI struct {
	services  *service.Services
	scheduler scheduler
	buildInfo models.BuildInfo
	logger    *logger.Logger
}

func New(services *service.Services, poller scheduler, buildInfo models.BuildInfo, log *logger.Logger) *TUI {
	return &TUI{
		services:  services,
		scheduler: poller,
		buildInfo: buildInfo,
		logger:    log,
	}
}

// programBridge hands messages from background jobs to the running program.
type programBridge struct {
	mu      sync.Mutex
	program *tea.Program
}

func (b *programBridge) attach(p *tea.Program) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.program = p
}

func (b *programBridge) send(msg tea.Msg) {
	b.mu.Lock()
	p := b.program
	b.mu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

func (t *TUI) pages(ctx context.Context) map[access.Screen]tea.Model {
	s := t.services
	return map[access.Screen]tea.Model{
		access.ScreenLogin:         newLoginPage(ctx, s.Session),
		access.ScreenRegister:      newRegisterPage(ctx, s.Session),
		screenForgot:               newForgotPage(ctx, s.Session),
		screenMenu:                 NewMenuModel(ctx, s.Session),
		access.ScreenDashboard:     newDashboardPage(ctx, access.ScreenDashboard, "DASHBOARD", "", s.Dashboard, s.Session),
		access.ScreenModeration:    newDashboardPage(ctx, access.ScreenModeration, "MODERATION", models.RoleModerator, s.Dashboard, s.Session),
		access.ScreenSupport:       newDashboardPage(ctx, access.ScreenSupport, "SUPPORT", models.RoleSupport, s.Dashboard, s.Session),
		access.ScreenUsers:         newUsersPage(ctx, s.Session, s.Users),
		access.ScreenOrders:        newOrdersPage(ctx, s.Session, s.Orders),
		access.ScreenInventory:     newInventoryPage(ctx, s.Session, s.Inventory),
		access.ScreenNotifications: newNotificationsPage(ctx, s.Session, s.Notifications),
		access.ScreenProfile:       newProfilePage(ctx, s.Profile),
	}
}

// Run shows the console until the operator quits or ctx is cancelled.
// Quitting with ctrl+c returns ErrUserQuit.
func (t *TUI) Run(ctx context.Context) error {
	updates, unsubscribe := t.services.Session.Subscribe()
	defer unsubscribe()

	bridge := &programBridge{}
	root := NewRootModel(rootDeps{
		ctx:       ctx,
		session:   t.services.Session,
		updates:   updates,
		pages:     t.pages(ctx),
		scheduler: t.scheduler,
		unread:    t.services.Notifications,
		notify:    bridge.send,
		buildInfo: t.buildInfo,
	})

	program := tea.NewProgram(root, tea.WithAltScreen(), tea.WithContext(ctx))
	bridge.attach(program)

	finalModel, err := program.Run()
	bridge.attach(nil)
	if t.scheduler != nil {
		t.scheduler.Unschedule(jobScreen)
		t.scheduler.Unschedule(jobUnread)
	}
	if err != nil {
		return err
	}

	if result, ok := finalModel.(RootModel); ok && result.quitByUser {
		t.logger.Info().Msg("operator quit the console")
		return ErrUserQuit
	}
	return nil
}
