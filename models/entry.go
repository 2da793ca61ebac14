package models

// EntryType is the discriminator stored on every logged entry.
type EntryType string

const (
	EntryTypeMeal  EntryType = "meal"
	EntryTypeWater EntryType = "water"
)

// Entry is one logged health event. The set of implementations is closed:
// only Meal and WaterLog satisfy it.
type Entry interface {
	Type() EntryType
	EntryID() string
	Owner() string

	entry()
}

type Meal struct {
	EntryType EntryType `bson:"entryType" json:"entryType"`
	ID        string    `bson:"_id" json:"id"`
	UserID    string    `bson:"userId" json:"userId"`
	Date      string    `bson:"date,omitempty" json:"date,omitempty"`
	Name      string    `bson:"name,omitempty" json:"name,omitempty"`
	Calories  int       `bson:"calories" json:"calories"`
}

func (m Meal) Type() EntryType { return EntryTypeMeal }
func (m Meal) EntryID() string { return m.ID }
func (m Meal) Owner() string   { return m.UserID }
func (Meal) entry()            {}

type WaterLog struct {
	EntryType EntryType `bson:"entryType" json:"entryType"`
	ID        string    `bson:"_id" json:"id"`
	UserID    string    `bson:"userId" json:"userId"`
	Date      string    `bson:"date,omitempty" json:"date,omitempty"`
	AmountML  int       `bson:"amountMl" json:"amountMl"`
}

func (w WaterLog) Type() EntryType { return EntryTypeWater }
func (w WaterLog) EntryID() string { return w.ID }
func (w WaterLog) Owner() string   { return w.UserID }
func (WaterLog) entry()            {}
