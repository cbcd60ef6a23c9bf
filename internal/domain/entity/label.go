package entity

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// UnknownLabelIndex индекс для метки, которой нет в наборе
const UnknownLabelIndex = -1

// DefaultLabelNames классы дефектов в порядке выходов классификатора
var DefaultLabelNames = []string{"sadio", "ardido", "brocado", "marinheiro", "preto", "verde"}

// LabelSet упорядоченный неизменяемый набор классов.
// Позиция имени задаёт индекс в векторе вероятностей классификатора.
type LabelSet struct {
	names []string
	index map[string]int
}

// LabelCount число зёрен по каждому классу набора
type LabelCount map[string]int

// NewLabelSet создаёт набор меток. Имена должны быть непустыми и уникальными.
func NewLabelSet(names ...string) (LabelSet, error) {
	if len(names) == 0 {
		return LabelSet{}, fmt.Errorf("%w: empty label set", ErrInvalidConfig)
	}
	set := LabelSet{
		names: make([]string, len(names)),
		index: make(map[string]int, len(names)),
	}
	for i, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			return LabelSet{}, fmt.Errorf("%w: label %d is empty", ErrInvalidConfig, i)
		}
		if _, dup := set.index[name]; dup {
			return LabelSet{}, fmt.Errorf("%w: duplicate label %q", ErrInvalidConfig, name)
		}
		set.names[i] = name
		set.index[name] = i
	}
	return set, nil
}

// DefaultLabelSet набор классов по умолчанию.
func DefaultLabelSet() LabelSet {
	set, _ := NewLabelSet(DefaultLabelNames...)
	return set
}

// Len количество классов.
func (s LabelSet) Len() int { return len(s.names) }

// Names копия имён в порядке индексов.
func (s LabelSet) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Index возвращает позицию имени в наборе или UnknownLabelIndex.
func (s LabelSet) Index(name string) int {
	if i, ok := s.index[name]; ok {
		return i
	}
	return UnknownLabelIndex
}

// Name возвращает имя класса по индексу.
func (s LabelSet) Name(i int) (string, bool) {
	if i < 0 || i >= len(s.names) {
		return "", false
	}
	return s.names[i], true
}

// Count подсчитывает индексы по классам. Результат всегда содержит все
// классы набора; индексы вне диапазона (например -1) пропускаются.
func (s LabelSet) Count(indices []int) LabelCount {
	result := make(LabelCount, len(s.names))
	for _, name := range s.names {
		result[name] = 0
	}
	for _, i := range indices {
		if name, ok := s.Name(i); ok {
			result[name]++
		}
	}
	return result
}

// CountPredictions считает классы по arg-max каждого вектора вероятностей.
func (s LabelSet) CountPredictions(predictions [][]float64) LabelCount {
	return s.Count(ArgMax(predictions))
}

// CountCropped считает классы по уже разрешённым индексам вырезанных зёрен.
func (s LabelSet) CountCropped(beans []CroppedBean) LabelCount {
	indices := make([]int, len(beans))
	for i, b := range beans {
		indices[i] = b.LabelIndex
	}
	return s.Count(indices)
}

// CountRecords разрешает имена меток записей и считает их.
func (s LabelSet) CountRecords(records []BeanRecord) LabelCount {
	indices := make([]int, len(records))
	for i, r := range records {
		indices[i] = s.Index(r.Label)
	}
	return s.Count(indices)
}

// ArgMax возвращает индекс максимума каждого вектора; пустой вектор даёт UnknownLabelIndex.
func ArgMax(predictions [][]float64) []int {
	out := make([]int, len(predictions))
	for i, p := range predictions {
		if len(p) == 0 {
			out[i] = UnknownLabelIndex
			continue
		}
		out[i] = floats.MaxIdx(p)
	}
	return out
}

// Total сумма всех счётчиков.
func (c LabelCount) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}
