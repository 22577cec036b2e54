// file: internals/features/school/grading/service/dispatcher.go
package service

import (
	"log"
	"sync"

	"github.com/google/uuid"
)

// SubmissionChanged se publica cuando una entrega de categoría tarea se
// crea, modifica o borra. El motor de promedios se suscribe al arrancar
// las rutas; así el recálculo no queda acoplado a hooks del storage.
type SubmissionChanged struct {
	StudentID    uuid.UUID
	CourseLoadID uuid.UUID
	UnitIndex    int
}

type SubmissionHandler func(ev SubmissionChanged) error

// Dispatcher es un fan-out en proceso y síncrono: el recálculo debe
// quedar aplicado cuando la mutación responde, y su falla debe llegar
// al que mutó, no quedarse en un log.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers []SubmissionHandler
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

func (d *Dispatcher) Subscribe(h SubmissionHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers = append(d.handlers, h)
}

// Publish entrega el evento en orden de suscripción y corta en el
// primer error, regresándolo al publicador.
func (d *Dispatcher) Publish(ev SubmissionChanged) error {
	d.mu.RLock()
	handlers := make([]SubmissionHandler, len(d.handlers))
	copy(handlers, d.handlers)
	d.mu.RUnlock()

	if len(handlers) == 0 {
		log.Printf("[GRADING] evento sin suscriptores: alumno=%s carga=%s unidad=%d",
			ev.StudentID, ev.CourseLoadID, ev.UnitIndex)
	}
	for _, h := range handlers {
		if err := h(ev); err != nil {
			return err
		}
	}
	return nil
}
