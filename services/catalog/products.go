package catalog

func DefaultProducts() []Product {
	return []Product{
		{
			UID:          "product_gaming_laptop",
			Name:         "Gaming Laptop",
			Price:        "R18999",
			Image:        "/static/img/gaming-laptop.jpg",
			Category:     "Laptops",
			Specs:        "16GB RAM, 1TB SSD, RTX 4060",
			AffiliateURL: "https://www.takealot.com/gaming-laptop",
		},
		{
			UID:          "product_ultrabook",
			Name:         "Ultrabook Pro",
			Price:        "R15499",
			Image:        "/static/img/ultrabook.jpg",
			Category:     "Laptops",
			Specs:        "13 inch, 16GB RAM, 512GB SSD",
			AffiliateURL: "https://www.takealot.com/ultrabook-pro",
		},
		{
			UID:          "product_smartphone",
			Name:         "Smartphone X",
			Price:        "R12999",
			Image:        "/static/img/smartphone.jpg",
			Category:     "Phones",
			Specs:        "6.5 inch OLED, 128GB",
			AffiliateURL: "https://www.takealot.com/smartphone-x",
		},
		{
			UID:          "product_budget_phone",
			Name:         "Budget Phone",
			Price:        "R2499",
			Image:        "/static/img/budget-phone.jpg",
			Category:     "Phones",
			Specs:        "6.1 inch LCD, 64GB",
			AffiliateURL: "https://www.takealot.com/budget-phone",
		},
		{
			UID:          "product_wireless_headphones",
			Name:         "Wireless Headphones",
			Price:        "R1999",
			Image:        "/static/img/headphones.jpg",
			Category:     "Accessories",
			Specs:        "Noise cancelling, 30h battery",
			AffiliateURL: "https://www.takealot.com/wireless-headphones",
		},
		{
			UID:          "product_smartwatch",
			Name:         "Smartwatch",
			Price:        "R3499",
			Image:        "/static/img/smartwatch.jpg",
			Category:     "Accessories",
			Specs:        "Heart rate, GPS, 5 ATM",
			AffiliateURL: "https://www.takealot.com/smartwatch",
		},
	}
}
