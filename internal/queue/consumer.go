package queue

import (
    "context"
    "encoding/json"
    "fmt"
    "log/slog"
    "os"
    "path/filepath"
    "sync"
    "time"

    "github.com/pkg/errors"
    amqp "github.com/rabbitmq/amqp091-go"
)

// StartOrderConsumer connects to RabbitMQ, declares the order.placed queue
// and appends one line per event to logPath.  It reconnects with backoff
// until ctx is cancelled, then returns ctx.Err().
func StartOrderConsumer(ctx context.Context, url, logPath string) error {
    w := &orderLog{path: logPath}
    backoff := time.Second
    for {
        if ctx.Err() != nil {
            return ctx.Err()
        }
        conn, err := amqp.Dial(url)
        if err != nil {
            slog.Warn("order-consumer: dial failed", "err", err, "retry_in", backoff)
            if !sleepCtx(ctx, backoff) {
                return ctx.Err()
            }
            if backoff < 30*time.Second {
                backoff *= 2
            }
            continue
        }
        backoff = time.Second

        err = consumeLoop(ctx, conn, w)
        _ = conn.Close()
        if ctx.Err() != nil {
            return ctx.Err()
        }
        slog.Warn("order-consumer: consume loop ended, reconnecting", "err", err)
        if !sleepCtx(ctx, 2*time.Second) {
            return ctx.Err()
        }
    }
}

func consumeLoop(ctx context.Context, conn *amqp.Connection, w *orderLog) error {
    ch, err := conn.Channel()
    if err != nil {
        return errors.Wrap(err, "channel open")
    }
    defer func() { _ = ch.Close() }()

    if err := ch.Qos(50, 0, false); err != nil {
        slog.Warn("order-consumer: set QoS failed", "err", err)
    }
    if _, err := ch.QueueDeclare(OrderQueueName, true, false, false, false, nil); err != nil {
        return errors.Wrap(err, "queue declare")
    }
    msgs, err := ch.Consume(OrderQueueName, "", false, false, false, false, nil)
    if err != nil {
        return errors.Wrap(err, "queue consume")
    }

    for {
        select {
        case <-ctx.Done():
            return ctx.Err()
        case d, ok := <-msgs:
            if !ok {
                return errors.New("deliveries channel closed")
            }
            if err := w.handle(d.Body); err != nil {
                slog.Error("order-consumer: handle message failed", "err", err)
                _ = d.Nack(false, false) // reject without requeue to avoid a hot loop
                continue
            }
            _ = d.Ack(false)
        }
    }
}

// orderLog appends formatted events to a file.
type orderLog struct {
    mu   sync.Mutex
    path string
}

func (w *orderLog) handle(body []byte) error {
    var ev OrderPlacedEvent
    if err := json.Unmarshal(body, &ev); err != nil {
        return errors.Wrap(err, "unmarshal")
    }
    if ev.OrderID == "" {
        return errors.New("event without order_id")
    }

    w.mu.Lock()
    defer w.mu.Unlock()
    if err := os.MkdirAll(filepath.Dir(w.path), 0o755); err != nil {
        return errors.Wrap(err, "mkdir logs")
    }
    f, err := os.OpenFile(w.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
    if err != nil {
        return errors.Wrap(err, "open log file")
    }
    defer f.Close()
    _, err = f.WriteString(FormatOrderLine(ev))
    return errors.Wrap(err, "write log")
}

// FormatOrderLine renders ev as a single newline-terminated log line.
func FormatOrderLine(ev OrderPlacedEvent) string {
    return fmt.Sprintf("[%s] Order placed | order_id=%s | email=%s | customer=%q | items=%d | subtotal=%.2f | fee=%.2f | total=%.2f\n",
        ev.PlacedAt.UTC().Format(time.RFC3339), ev.OrderID, ev.Email, ev.CustomerName,
        ev.ItemCount, ev.Subtotal, ev.Fee, ev.Total)
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
    t := time.NewTimer(d)
    defer t.Stop()
    select {
    case <-ctx.Done():
        return false
    case <-t.C:
        return true
    }
}
