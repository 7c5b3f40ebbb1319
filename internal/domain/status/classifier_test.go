package status

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustClassify(t *testing.T, now time.Time, sched Schedule, ctx Context) DisplayStatus {
	t.Helper()
	st, err := Classify(now, sched, ctx)
	if err != nil {
		t.Fatalf("Classify returned error: %v", err)
	}
	return st
}

func TestClassify_History_OverridesDates(t *testing.T) {
	// Da igual la relación de fechas: historial => Finalizada.
	cases := []time.Time{
		day(2024, 3, 1),  // antes del inicio
		day(2024, 3, 11), // dentro de la ventana
		day(2024, 6, 1),  // mucho después del fin
	}
	sched := NewScheduled(day(2024, 3, 10), day(2024, 3, 12))

	for _, now := range cases {
		st := mustClassify(t, now, sched, Context{IsHistory: true})
		if st.Label != "Finalizada" || st.Severity != SeverityDone {
			t.Fatalf("now=%s: expected Finalizada/done, got %+v", now, st)
		}
	}
}

func TestClassify_Pending_DaysSinceEnd(t *testing.T) {
	end := day(2024, 3, 1)

	cases := []struct {
		now   time.Time
		label string
	}{
		{day(2024, 3, 2), "Pendiente hace 1 día"},
		{day(2024, 3, 3), "Pendiente hace 2 días"},
		{day(2024, 3, 8), "Pendiente hace 7 días"},
	}

	for _, c := range cases {
		st := mustClassify(t, c.now, NewDeadline(end), Context{IsPendingClose: true})
		if st.Label != c.label {
			t.Fatalf("now=%s: expected %q, got %q", c.now, c.label, st.Label)
		}
		if st.Severity != SeverityUrgent {
			t.Fatalf("now=%s: expected urgent, got %s", c.now, st.Severity)
		}
	}
}

func TestClassify_Pending_FlagAtBoundaryIsToday(t *testing.T) {
	// El listado de pendientes puede afirmar el flag en el mismo día fin.
	end := day(2024, 3, 1)
	st := mustClassify(t, end, NewDeadline(end), Context{IsPendingClose: true})
	if st.Label != "Pendiente hoy" || st.Severity != SeverityUrgent {
		t.Fatalf("expected Pendiente hoy/urgent, got %+v", st)
	}
}

func TestClassify_Pending_DerivedFromDatesWithoutFlag(t *testing.T) {
	// Sin flag explícito, pasar la fecha fin también es pendiente.
	st := mustClassify(t, day(2024, 3, 3), NewDeadline(day(2024, 3, 1)), Context{})
	if st.Label != "Pendiente hace 2 días" || st.Severity != SeverityUrgent {
		t.Fatalf("expected Pendiente hace 2 días/urgent, got %+v", st)
	}
}

func TestClassify_Scheduled_DayBeforeStart(t *testing.T) {
	sched := NewScheduled(day(2024, 3, 10), day(2024, 3, 12))

	st := mustClassify(t, day(2024, 3, 9), sched, Context{})
	if st.Label != "Mañana" || st.Severity != SeverityWarning {
		t.Fatalf("expected Mañana/warning, got %+v", st)
	}

	st = mustClassify(t, day(2024, 3, 5), sched, Context{})
	if st.Label != "5 días" || st.Severity != SeverityWarning {
		t.Fatalf("expected 5 días/warning, got %+v", st)
	}
}

func TestClassify_Scheduled_StartDayAndInProgress(t *testing.T) {
	sched := NewScheduled(day(2024, 3, 10), day(2024, 3, 12))

	st := mustClassify(t, day(2024, 3, 10), sched, Context{})
	if st.Label != "Hoy" || st.Severity != SeverityOK {
		t.Fatalf("expected Hoy/ok on start day, got %+v", st)
	}

	for _, now := range []time.Time{day(2024, 3, 11), day(2024, 3, 12)} {
		st = mustClassify(t, now, sched, Context{})
		if st.Label != "En curso" || st.Severity != SeverityOK {
			t.Fatalf("now=%s: expected En curso/ok, got %+v", now, st)
		}
	}
}

func TestClassify_Deadline_EndDayIsToday(t *testing.T) {
	// Para cualquier fecha fin: now==fin sin inicio => Hoy/ok.
	ends := []time.Time{
		day(2024, 1, 1),
		day(2024, 2, 29),
		day(2025, 12, 31),
	}
	for _, end := range ends {
		st := mustClassify(t, end, NewDeadline(end), Context{})
		if st.Label != "Hoy" || st.Severity != SeverityOK {
			t.Fatalf("end=%s: expected Hoy/ok, got %+v", end, st)
		}
	}
}

func TestClassify_Deadline_Countdown(t *testing.T) {
	end := day(2024, 3, 12)

	st := mustClassify(t, day(2024, 3, 11), NewDeadline(end), Context{})
	if st.Label != "Mañana" || st.Severity != SeverityWarning {
		t.Fatalf("expected Mañana/warning, got %+v", st)
	}

	st = mustClassify(t, day(2024, 3, 2), NewDeadline(end), Context{})
	if st.Label != "10 días" || st.Severity != SeverityWarning {
		t.Fatalf("expected 10 días/warning, got %+v", st)
	}
}

func TestClassify_TimeOfDayIsIgnored(t *testing.T) {
	// La comparación es solo de fecha: las horas no cambian el resultado.
	start := time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)
	end := time.Date(2024, 3, 10, 11, 0, 0, 0, time.UTC)
	now := time.Date(2024, 3, 10, 23, 45, 0, 0, time.UTC)

	st := mustClassify(t, now, NewScheduled(start, end), Context{})
	if st.Label != "Hoy" || st.Severity != SeverityOK {
		t.Fatalf("expected Hoy/ok ignoring time of day, got %+v", st)
	}
}

func TestClassify_InvalidEndFailsLoudly(t *testing.T) {
	_, err := Classify(day(2024, 3, 1), Schedule{}, Context{})
	if err != ErrInvalidDate {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestForDisplay_MapsErrorToNeutral(t *testing.T) {
	st := ForDisplay(nil, day(2024, 3, 1), Schedule{}, Context{})
	if st.Severity != SeverityUnknown || st.Label != "" {
		t.Fatalf("expected neutral status on invalid date, got %+v", st)
	}
}
