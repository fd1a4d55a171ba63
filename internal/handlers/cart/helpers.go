package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/buildmart/backend/internal/mykafka"
	"github.com/buildmart/backend/internal/session"
)

// publish emits a cart event keyed by whichever identity owns the session.
func publish(c echo.Context, p *mykafka.Producer, sess session.Session, event map[string]any) {
	key := sess.GuestID
	if sess.Authenticated() {
		key = fmt.Sprint(sess.UserID)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := p.PublishEvent(ctx, "cart_events", key, event); err != nil {
		c.Logger().Errorf("kafka publish error: %v", err)
	}
}
