package queue

import (
	"context"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/skillbridge/jobmatch/internal/core/ports"
)

// LogNotifier writes notifications to the log instead of sending mail. It is
// the delivery backend in development and until an SMTP sender exists.
//
// The one-time token in a link is masked at Info. The full link is only
// written at Debug so a developer can follow it locally.
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Send(_ context.Context, msg ports.Notification) error {
	ev := n.log.Info().
		Str("kind", string(msg.Kind)).
		Str("recipient", msg.Recipient).
		Str("name", msg.Name)
	if msg.Link != "" {
		ev = ev.Str("link", redactLink(msg.Link))
		n.log.Debug().Str("kind", string(msg.Kind)).Str("link", msg.Link).Msg("notification link")
	}
	ev.Msg("notification delivered")
	return nil
}

func redactLink(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return "[unparseable link]"
	}
	q := u.Query()
	if q.Has("token") {
		q.Set("token", "REDACTED")
		u.RawQuery = q.Encode()
	}
	return u.String()
}
