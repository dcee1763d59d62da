package citas

import (
	"testing"

	"luna27-backend/internal/models"
)

func TestTransicionesDeCita(t *testing.T) {
	casos := []struct {
		desde, hacia models.EstadoCita
		permitida    bool
	}{
		{models.CitaPendiente, models.CitaConfirmada, true},
		{models.CitaPendiente, models.CitaCancelada, true},
		{models.CitaPendiente, models.CitaCompletada, false},
		{models.CitaConfirmada, models.CitaCompletada, true},
		{models.CitaConfirmada, models.CitaCancelada, true},
		{models.CitaConfirmada, models.CitaNoAsistio, true},
		{models.CitaConfirmada, models.CitaPendiente, false},
		{models.CitaCompletada, models.CitaCancelada, false},
		{models.CitaCancelada, models.CitaConfirmada, false},
		{models.CitaNoAsistio, models.CitaPendiente, false},
	}

	for _, caso := range casos {
		if got := transicionPermitida(caso.desde, caso.hacia); got != caso.permitida {
			t.Errorf("transicion %s -> %s: esperado %v, obtenido %v", caso.desde, caso.hacia, caso.permitida, got)
		}
	}
}
