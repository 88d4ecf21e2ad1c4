package cli

import (
	"context"
	"fmt"

	"careerhub/internal/viewmodel"
)

// notificationPageSize caps one listing; older entries stay in the feed.
const notificationPageSize = 50

func (a *App) listNotifications(ctx context.Context) {
	if !a.requireAuth() {
		return
	}
	if err := a.notifications.CatchUp(ctx); err != nil {
		a.log.Warn(ctx, "notification refresh failed", "error", err)
	}
	items, unread := a.notifications.Snapshot()
	if len(items) == 0 {
		fmt.Fprintln(a.out, "No notifications.")
		return
	}
	fmt.Fprintf(a.out, "%d notifications, %d unread\n", len(items), unread)
	for _, n := range viewmodel.Paginate(items, 1, notificationPageSize) {
		renderNotificationLine(a.out, n)
	}
}

func (a *App) markAllRead(ctx context.Context) {
	if !a.requireAuth() {
		return
	}
	applied, failed := a.notifications.MarkAllRead(ctx)
	switch {
	case failed > 0:
		a.toasts.Warning(fmt.Sprintf("Marked %d read, %d failed", applied, failed))
	case applied > 0:
		a.toasts.Success(fmt.Sprintf("Marked %d notifications read", applied))
	default:
		fmt.Fprintln(a.out, "Nothing unread.")
	}
}
