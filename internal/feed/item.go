package feed

// Header is the field order of an exported record.
var Header = []string{"Title", "Date", "Creator", "Link", "Description"}

// Item is one feed entry flattened to the exported fields.
type Item struct {
	Title       string
	Date        string
	Creator     string
	Link        string
	Description string
}

// Values returns the item fields in Header order.
func (it Item) Values() []string {
	return []string{it.Title, it.Date, it.Creator, it.Link, it.Description}
}
