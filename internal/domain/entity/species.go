package entity

// SpeciesRecord справочная карточка вида.
type SpeciesRecord struct {
	Label          string `yaml:"-"`
	CommonName     string `yaml:"common_name"`
	Category       string `yaml:"category"`
	FlowerLanguage string `yaml:"flower_language"`
	GrowingSeason  string `yaml:"growing_season"`
	Distribution   string `yaml:"distribution"`
	Toxicity       string `yaml:"toxicity"`
	Edibility      string `yaml:"edibility"`
	MedicinalValue string `yaml:"medicinal_value"`
	EcoNotes       string `yaml:"eco_notes"`
}

// SpeciesField идентификатор поля карточки (совпадает с ключом строки в локали).
type SpeciesField string

const (
	FieldCommonName     SpeciesField = "field_common_name"
	FieldCategory       SpeciesField = "field_category"
	FieldFlowerLanguage SpeciesField = "field_flower_language"
	FieldGrowingSeason  SpeciesField = "field_growing_season"
	FieldDistribution   SpeciesField = "field_distribution"
	FieldToxicity       SpeciesField = "field_toxicity"
	FieldEdibility      SpeciesField = "field_edibility"
	FieldMedicinalValue SpeciesField = "field_medicinal_value"
	FieldEcoNotes       SpeciesField = "field_eco_notes"
)

// FieldValue пара (поле, значение)
type FieldValue struct {
	Field SpeciesField
	Value string
}

// Fields возвращает все поля карточки в порядке отображения.
func (r SpeciesRecord) Fields() []FieldValue {
	return []FieldValue{
		{FieldCommonName, r.CommonName},
		{FieldCategory, r.Category},
		{FieldFlowerLanguage, r.FlowerLanguage},
		{FieldGrowingSeason, r.GrowingSeason},
		{FieldDistribution, r.Distribution},
		{FieldToxicity, r.Toxicity},
		{FieldEdibility, r.Edibility},
		{FieldMedicinalValue, r.MedicinalValue},
		{FieldEcoNotes, r.EcoNotes},
	}
}

// HasToxicityWarning есть ли предупреждение о токсичности
func (r SpeciesRecord) HasToxicityWarning() bool {
	return r.Toxicity != ""
}
