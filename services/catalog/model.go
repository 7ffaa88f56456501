package catalog

type Product struct {
	UID          string
	Name         string
	Price        string
	Image        string
	Category     string
	Specs        string
	AffiliateURL string
}

const AllCategories = "All"
