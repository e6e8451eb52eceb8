package crdt

// Clock представляет векторные часы: отображение идентификатора реплики
// в монотонно растущий счетчик её событий. Используются для установления
// причинного (а не физического) порядка между версиями одной записи.
// Отсутствующий ключ читается как 0.
type Clock map[string]int64

// Ordering описывает результат сравнения двух векторных часов.
type Ordering int

const (
	// Before: каждая компонента A <= B и часы не равны.
	Before Ordering = iota
	// After: каждая компонента B <= A и часы не равны.
	After
	// Equal: все компоненты совпадают.
	Equal
	// Concurrent: ни одна история не содержит другую, требуется merge.
	Concurrent
)

// String returns a human-readable ordering name for logs.
func (o Ordering) String() string {
	switch o {
	case Before:
		return "before"
	case After:
		return "after"
	case Equal:
		return "equal"
	case Concurrent:
		return "concurrent"
	default:
		return "unknown"
	}
}

// Clone возвращает независимую копию часов.
// Clone от nil возвращает пустые (не nil) часы.
func (c Clock) Clone() Clock {
	out := make(Clock, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// Increment возвращает новые часы, в которых счетчик replicaID увеличен
// на единицу. Входные часы не изменяются; nil трактуется как пустые часы.
func Increment(c Clock, replicaID string) Clock {
	out := c.Clone()
	out[replicaID]++
	return out
}

// Merge возвращает покомпонентный максимум двух часов по объединению
// ключей. Операция коммутативна, ассоциативна и идемпотентна — это join
// полурешетки векторных часов.
func Merge(a, b Clock) Clock {
	out := a.Clone()
	for k, v := range b {
		if v > out[k] {
			out[k] = v
		}
	}
	return out
}

// Compare устанавливает причинное отношение между двумя часами.
// Нулевые компоненты эквивалентны отсутствующим, поэтому {A:1, B:0}
// и {A:1} равны.
func Compare(a, b Clock) Ordering {
	var aGreater, bGreater bool

	for k, av := range a {
		if bv := b[k]; av > bv {
			aGreater = true
		} else if av < bv {
			bGreater = true
		}
	}
	for k, bv := range b {
		if _, ok := a[k]; !ok && bv > 0 {
			bGreater = true
		}
	}

	switch {
	case aGreater && bGreater:
		return Concurrent
	case aGreater:
		return After
	case bGreater:
		return Before
	default:
		return Equal
	}
}
