package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// DefaultSubject es el subject NATS de los análisis completados.
const DefaultSubject = "resume.analysis.completed"

// AnalysisCompleted es el evento emitido tras un análisis exitoso. No incluye el texto del currículum.
type AnalysisCompleted struct {
	EventID         string    `json:"eventId"`
	AnalysisID      int64     `json:"analysisId,omitempty"`
	JobRole         string    `json:"jobRole"`
	CustomJobRole   string    `json:"customJobRole,omitempty"`
	ExperienceLevel string    `json:"experienceLevel"`
	OverallScore    int       `json:"overallScore"`
	Level           string    `json:"level"`
	OccurredAt      time.Time `json:"occurredAt"`
}

// NewAnalysisCompleted completa EventID y OccurredAt.
func NewAnalysisCompleted(analysisID int64, jobRole, customJobRole, experienceLevel string, overallScore int, level string) AnalysisCompleted {
	return AnalysisCompleted{
		EventID:         uuid.NewString(),
		AnalysisID:      analysisID,
		JobRole:         jobRole,
		CustomJobRole:   customJobRole,
		ExperienceLevel: experienceLevel,
		OverallScore:    overallScore,
		Level:           level,
		OccurredAt:      time.Now().UTC(),
	}
}

// Publisher emite eventos de dominio hacia consumidores externos.
type Publisher interface {
	PublishAnalysisCompleted(ctx context.Context, event AnalysisCompleted) error
	Close() error
}

// NopPublisher descarta todos los eventos. Se usa cuando NATS no está configurado.
type NopPublisher struct{}

func (NopPublisher) PublishAnalysisCompleted(context.Context, AnalysisCompleted) error { return nil }
func (NopPublisher) Close() error                                                     { return nil }

type natsConn interface {
	Publish(subject string, data []byte) error
	Drain() error
}

// NATSPublisher publica eventos JSON sobre un subject fijo.
type NATSPublisher struct {
	conn    natsConn
	subject string
	logger  *zap.Logger
}

// NewNATSPublisher conecta al servidor y devuelve un publisher listo.
func NewNATSPublisher(url, subject string, logger *zap.Logger) (*NATSPublisher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if subject == "" {
		subject = DefaultSubject
	}
	nc, err := nats.Connect(url,
		nats.Name("resume-analyzer"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", zap.Error(err))
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("nats reconnected", zap.String("url", c.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	return &NATSPublisher{conn: nc, subject: subject, logger: logger}, nil
}

func (p *NATSPublisher) PublishAnalysisCompleted(ctx context.Context, event AnalysisCompleted) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := p.conn.Publish(p.subject, data); err != nil {
		return fmt.Errorf("publish %s: %w", p.subject, err)
	}
	p.logger.Debug("event published", zap.String("subject", p.subject), zap.String("event_id", event.EventID))
	return nil
}

// Close drena la conexión para no perder mensajes en vuelo.
func (p *NATSPublisher) Close() error {
	return p.conn.Drain()
}
