package app

import (
	"plant-bot/internal/domain/entity"
	"plant-bot/internal/domain/port"
)

// SpeciesBlock один блок результата: срабатывание и, если есть, карточка вида.
type SpeciesBlock struct {
	Detection entity.Detection
	Record    *entity.SpeciesRecord // nil: вид не найден в справочнике
}

// Found найдена ли карточка
func (b SpeciesBlock) Found() bool {
	return b.Record != nil
}

// ResultView проекция результата распознавания для отображения.
type ResultView struct {
	Detections entity.DetectionSet
	Blocks     []SpeciesBlock
}

// Empty ничего не распознано
func (v ResultView) Empty() bool {
	return len(v.Blocks) == 0
}

// RenderResult схлопывает срабатывания и соединяет их со справочником. Без побочных эффектов.
func RenderResult(raw []entity.RawDetection, catalog port.SpeciesCatalog, policy entity.DedupPolicy) ResultView {
	set := entity.NewDetectionSet(raw, policy)

	blocks := make([]SpeciesBlock, 0, set.Len())
	for _, d := range set.Items() {
		block := SpeciesBlock{Detection: d}
		if record, ok := catalog.Lookup(d.Label); ok {
			r := record
			block.Record = &r
		}
		blocks = append(blocks, block)
	}

	return ResultView{Detections: set, Blocks: blocks}
}
