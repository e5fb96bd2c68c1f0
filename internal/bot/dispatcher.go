package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"tgexp/internal/core"
	"tgexp/internal/log"
	"tgexp/internal/quotes"
	"tgexp/internal/report"
	"tgexp/internal/store"
)

// Inbound is one chat message as seen by the dispatcher.
type Inbound struct {
	ChatID     int64
	Text       string
	SenderID   int64
	SenderName string
	SentAt     int64 // unix seconds, message send time
}

// Reply is the dispatcher's answer. Preformatted replies contain an HTML pre
// block and must be sent with rich-text rendering disabled inside it.
type Reply struct {
	Text         string
	Preformatted bool
}

// MemberResolver resolves a chat member's display name. Implemented by the
// transport layer.
type MemberResolver interface {
	ResolveMember(ctx context.Context, chatID, userID int64) (string, error)
}

// EventPublisher announces appended positions to the export pipeline.
type EventPublisher interface {
	PublishPositionSync(ctx context.Context, id, chatID int64) error
}

// Dispatcher routes inbound messages to commands or the price parser. It is
// stateless per message; all state lives in the store.
type Dispatcher struct {
	store    store.Store
	parser   *core.Parser
	resolver MemberResolver
	events   EventPublisher // optional
	logger   *log.Logger
	now      func() time.Time
	quote    func() string
}

func NewDispatcher(st store.Store, parser *core.Parser, resolver MemberResolver, events EventPublisher, logger *log.Logger) *Dispatcher {
	return &Dispatcher{
		store:    st,
		parser:   parser,
		resolver: resolver,
		events:   events,
		logger:   logger,
		now:      time.Now,
		quote:    quotes.Random,
	}
}

// Handle processes one message to completion and returns the reply payload.
// Collaborator failures propagate; the transport turns them into a generic
// failure reply.
func (d *Dispatcher) Handle(ctx context.Context, in Inbound) (Reply, error) {
	if cmd, args, ok := splitCommand(in.Text); ok {
		switch cmd {
		case "info":
			return d.handleInfo(ctx, in)
		case "last":
			return d.handleLast(ctx, in, args)
		case "reset_total":
			return d.handleResetTotal(ctx, in)
		case "total":
			return d.handleTotal(ctx, in)
		}
		// Unknown commands fall through to price parsing like any text.
	}
	return d.handleText(ctx, in)
}

// splitCommand recognizes "/cmd arg…" including the "/cmd@botname" form.
func splitCommand(text string) (string, []string, bool) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return "", nil, false
	}
	fields := strings.Fields(text[1:])
	if len(fields) == 0 {
		return "", nil, false
	}
	cmd := fields[0]
	if at := strings.Index(cmd, "@"); at >= 0 {
		cmd = cmd[:at]
	}
	if cmd == "" {
		return "", nil, false
	}
	return cmd, fields[1:], true
}

func (d *Dispatcher) handleInfo(ctx context.Context, in Inbound) (Reply, error) {
	since, err := d.store.ResetTimestamp(ctx, in.ChatID)
	if err != nil {
		return Reply{}, fmt.Errorf("reset timestamp: %w", err)
	}
	positions, err := d.store.Positions(ctx, in.ChatID)
	if err != nil {
		return Reply{}, fmt.Errorf("load positions: %w", err)
	}

	text := fmt.Sprintf("Totals tracking since %s.\nObjects in database: %d",
		report.Date(since), len(positions))
	return Reply{Text: text}, nil
}

func (d *Dispatcher) handleLast(ctx context.Context, in Inbound, args []string) (Reply, error) {
	// A single argument that is a valid non-negative integer literal
	// overrides the count; anything else falls back to the default.
	n := core.DefaultRecentCount
	if len(args) == 1 {
		if v, err := strconv.Atoi(args[0]); err == nil && v >= 0 && args[0] == strconv.Itoa(v) {
			n = v
		}
	}

	positions, err := d.store.Positions(ctx, in.ChatID)
	if err != nil {
		return Reply{}, fmt.Errorf("load positions: %w", err)
	}
	last := core.RecentSlice(positions, n)

	text := fmt.Sprintf("Last %d items:\n%s", n, report.WrapPre(report.PositionsTable(last)))
	return Reply{Text: text, Preformatted: true}, nil
}

func (d *Dispatcher) handleResetTotal(ctx context.Context, in Inbound) (Reply, error) {
	ts := d.now().Unix()
	if err := d.store.SetResetTimestamp(ctx, in.ChatID, ts); err != nil {
		return Reply{}, fmt.Errorf("set reset timestamp: %w", err)
	}

	d.logger.Info("Totals baseline reset",
		log.FieldChatID, in.ChatID,
		log.FieldUserID, in.SenderID)

	return Reply{Text: fmt.Sprintf("Totals tracking reset on %s.", report.Date(ts))}, nil
}

func (d *Dispatcher) handleTotal(ctx context.Context, in Inbound) (Reply, error) {
	since, err := d.store.ResetTimestamp(ctx, in.ChatID)
	if err != nil {
		return Reply{}, fmt.Errorf("reset timestamp: %w", err)
	}
	positions, err := d.store.Positions(ctx, in.ChatID)
	if err != nil {
		return Reply{}, fmt.Errorf("load positions: %w", err)
	}

	totals := core.TotalsByUser(positions, since)
	if len(totals) == 0 {
		// No qualifying entries: no table and no member lookups.
		return Reply{Text: fmt.Sprintf("No entries since %s.", report.Date(since))}, nil
	}

	// Resolve all contributing names concurrently; any failure fails the
	// whole reply rather than rendering a partial table.
	rows := make([]report.TotalRow, 0, len(totals))
	for userID, total := range totals {
		rows = append(rows, report.TotalRow{UserID: userID, Total: total})
	}

	g, gctx := errgroup.WithContext(ctx)
	for i := range rows {
		i := i
		g.Go(func() error {
			name, err := d.resolver.ResolveMember(gctx, in.ChatID, rows[i].UserID)
			if err != nil {
				return fmt.Errorf("resolve member %d: %w", rows[i].UserID, err)
			}
			rows[i].Name = name
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Reply{}, err
	}

	text := fmt.Sprintf("Total expenses since %s:\n%s",
		report.Date(since), report.WrapPre(report.TotalsTable(rows, d.parser.Currency())))
	return Reply{Text: text, Preformatted: true}, nil
}

func (d *Dispatcher) handleText(ctx context.Context, in Inbound) (Reply, error) {
	price, comment, ok := d.parser.Parse(in.Text)
	if !ok {
		// Not an expense message; this is the designed fallback, not an error.
		return Reply{Text: d.quote()}, nil
	}

	p := core.Position{
		Price:     price,
		Comment:   comment,
		From:      in.SenderName,
		FromID:    in.SenderID,
		Timestamp: in.SentAt,
	}
	id, err := d.store.Append(ctx, in.ChatID, p)
	if err != nil {
		return Reply{}, fmt.Errorf("append position: %w", err)
	}

	d.logger.Info("Position recorded",
		log.FieldChatID, in.ChatID,
		log.FieldFromID, in.SenderID,
		log.FieldPriceCents, price.Cents)

	if d.events != nil {
		// Export is best effort; the position is already stored.
		if err := d.events.PublishPositionSync(ctx, id, in.ChatID); err != nil {
			d.logger.Error("Failed to publish position sync message",
				log.FieldChatID, in.ChatID,
				log.FieldError, err)
		}
	}

	return Reply{Text: report.PositionLine(p, d.parser.Currency())}, nil
}
