package entity

// BoundingBox область объекта на исходном изображении
type BoundingBox struct {
	X      int // координата X левого верхнего угла
	Y      int // координата Y левого верхнего угла
	Width  int // ширина области в пикселях
	Height int // высота области в пикселях
}

// Center возвращает координаты центра области
func (b BoundingBox) Center() (x, y int) {
	return b.X + b.Width/2, b.Y + b.Height/2
}

// Area возвращает площадь области в пикселях
func (b BoundingBox) Area() int {
	return b.Width * b.Height
}

// RawDetection одно срабатывание модели так, как его вернул детектор.
type RawDetection struct {
	ClassID    int
	Label      string
	Confidence float32
	Box        BoundingBox
}

// Detection пара (вид, уверенность); сравнима и служит ключом множества.
type Detection struct {
	Label      string
	Confidence float32
}

// DedupPolicy определяет ключ схлопывания срабатываний.
type DedupPolicy string

const (
	// DedupByPair схлопывает только полностью совпадающие пары (label, confidence).
	DedupByPair DedupPolicy = "pair"
	// DedupByLabel оставляет одну запись на вид с максимальной уверенностью.
	DedupByLabel DedupPolicy = "label"
)

// ParseDedupPolicy разбирает политику; пустая строка даёт DedupByPair.
func ParseDedupPolicy(s string) (DedupPolicy, bool) {
	switch DedupPolicy(s) {
	case "", DedupByPair:
		return DedupByPair, true
	case DedupByLabel:
		return DedupByLabel, true
	}
	return "", false
}

// DetectionSet упорядоченное множество срабатываний (порядок первого появления).
type DetectionSet struct {
	items []Detection
}

// NewDetectionSet строит множество из сырых срабатываний по заданной политике.
func NewDetectionSet(raw []RawDetection, policy DedupPolicy) DetectionSet {
	if policy == DedupByLabel {
		return dedupByLabel(raw)
	}

	seen := make(map[Detection]struct{}, len(raw))
	items := make([]Detection, 0, len(raw))
	for _, r := range raw {
		d := Detection{Label: r.Label, Confidence: r.Confidence}
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		items = append(items, d)
	}
	return DetectionSet{items: items}
}

func dedupByLabel(raw []RawDetection) DetectionSet {
	index := make(map[string]int, len(raw))
	items := make([]Detection, 0, len(raw))
	for _, r := range raw {
		if i, ok := index[r.Label]; ok {
			if r.Confidence > items[i].Confidence {
				items[i].Confidence = r.Confidence
			}
			continue
		}
		index[r.Label] = len(items)
		items = append(items, Detection{Label: r.Label, Confidence: r.Confidence})
	}
	return DetectionSet{items: items}
}

// Len возвращает число уникальных срабатываний
func (s DetectionSet) Len() int {
	return len(s.items)
}

// Items возвращает копию элементов
func (s DetectionSet) Items() []Detection {
	out := make([]Detection, len(s.items))
	copy(out, s.items)
	return out
}

// Labels возвращает названия видов в порядке множества
func (s DetectionSet) Labels() []string {
	out := make([]string, len(s.items))
	for i, d := range s.items {
		out[i] = d.Label
	}
	return out
}

// Contains проверяет наличие пары в множестве
func (s DetectionSet) Contains(d Detection) bool {
	for _, item := range s.items {
		if item == d {
			return true
		}
	}
	return false
}
