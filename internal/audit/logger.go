package audit

import (
	"encoding/json"
	stdlog "log"

	"gorm.io/gorm"

	"github.com/barberflow/barberflow-server/internal/models"
)

// Logger grava a trilha de eventos no banco primário. Sem banco (modo
// degradado) os eventos vão para o log do processo.
type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Log(
	actor string,
	action string,
	entity string,
	entityID *string,
	metadata any,
) error {

	var metaJSON string
	if metadata != nil {
		if b, err := json.Marshal(metadata); err == nil {
			metaJSON = string(b)
		}
	}

	if l.db == nil {
		id := ""
		if entityID != nil {
			id = *entityID
		}
		stdlog.Printf("audit: %s %s %s %s %s", actor, action, entity, id, metaJSON)
		return nil
	}

	entry := models.AuditLog{
		Actor:    actor,
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Metadata: metaJSON,
	}

	return l.db.Create(&entry).Error
}
