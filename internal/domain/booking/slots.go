package booking

import (
	"sort"
	"time"
)

// Interval é um período ocupado [Start, End)
type Interval struct {
	Start time.Time
	End   time.Time
}

// AvailableSlots gera os horários livres entre workStart e workEnd.
//
// Os candidatos andam numa grade fixa de `step` a partir do início do
// expediente; a grade NÃO depende da duração do serviço, para que serviços
// de durações diferentes compartilhem os mesmos inícios de horário.
//
// Um candidato é válido quando:
//   - candidato + duration <= workEnd
//   - candidato >= now (reservas no passado nunca são oferecidas)
//   - [candidato, candidato+duration) não cruza nenhum intervalo ocupado;
//     extremos encostados não contam como conflito
func AvailableSlots(
	workStart time.Time,
	workEnd time.Time,
	duration time.Duration,
	step time.Duration,
	busy []Interval,
	now time.Time,
) []time.Time {

	if duration <= 0 || step <= 0 || !workStart.Before(workEnd) {
		return nil
	}

	occupied := make([]Interval, len(busy))
	copy(occupied, busy)
	sort.Slice(occupied, func(i, j int) bool {
		return occupied[i].Start.Before(occupied[j].Start)
	})

	var slots []time.Time

	idx := 0

	for cur := workStart; !cur.Add(duration).After(workEnd); cur = cur.Add(step) {

		slotStart := cur
		slotEnd := cur.Add(duration)

		if slotStart.Before(now) {
			continue
		}

		// avança reservas já encerradas antes do slot
		for idx < len(occupied) && !occupied[idx].End.After(slotStart) {
			idx++
		}

		conflict := false
		for j := idx; j < len(occupied); j++ {
			if !occupied[j].Start.Before(slotEnd) {
				break
			}
			if slotStart.Before(occupied[j].End) && slotEnd.After(occupied[j].Start) {
				conflict = true
				break
			}
		}

		if !conflict {
			slots = append(slots, slotStart)
		}
	}

	return slots
}
