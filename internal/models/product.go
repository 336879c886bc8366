package models

type ProductType string

const (
	ProductTypeCustomBuild ProductType = "Custom Build"
	ProductTypePrebuiltPC  ProductType = "Prebuilt PC"
	ProductTypeLaptop      ProductType = "Laptop"
)

// ProductTag is assigned by the storefront, never by the model.
type ProductTag string

const (
	TagRecommendedForYou ProductTag = "Recommended for You"
	TagGoodValue         ProductTag = "Good Value"
	TagHighPerformance   ProductTag = "High Performance"
)

// Product is one computer configuration. The struct tags double as the
// response schema sent to the generative model, so every field without
// omitempty is required there.
type Product struct {
	IsBestMatch       bool             `json:"isBestMatch" jsonschema_description:"Mark true for the single best recommendation that fits the user needs. Without user context mark the best overall value as true."`
	Type              ProductType      `json:"type" jsonschema:"enum=Custom Build,enum=Prebuilt PC,enum=Laptop" jsonschema_description:"The type of computer being recommended."`
	Title             string           `json:"title" jsonschema_description:"A specific title built from the primary component names, e.g. Ryzen 5 5600 + RTX 3060 Build or Dell XPS 15 Laptop. No marketing names."`
	Rationale         string           `json:"rationale" jsonschema_description:"A brief, calm explanation of why this recommendation is a good fit."`
	EstimatedPriceINR int              `json:"estimatedPriceINR" jsonschema_description:"The estimated lowest price in Indian Rupees, derived from the purchase options."`
	Components        []ComponentSpec  `json:"components" jsonschema_description:"The key components of the PC or laptop."`
	PurchaseOptions   []PurchaseOption `json:"purchaseOptions" jsonschema_description:"2-3 purchase options from different e-commerce vendors."`
	Reviews           []Review         `json:"reviews" jsonschema_description:"2-3 sample reviews for the product."`
	ImageURL          string           `json:"imageUrl" jsonschema_description:"A relevant Unsplash Source image URL whose query is based on the main components, e.g. https://source.unsplash.com/600x400/?pc-build-rtx3060"`
	Tag               ProductTag       `json:"tag,omitempty" jsonschema:"-"`
}

type ComponentSpec struct {
	Name string `json:"name" jsonschema_description:"Component category, e.g. Processor, Graphics Card, RAM, Storage."`
	Spec string `json:"spec" jsonschema_description:"Specific model or specification, e.g. AMD Ryzen 5 5600 or 16GB DDR4 3200MHz."`
}

type PurchaseOption struct {
	Vendor string `json:"vendor" jsonschema_description:"Vendor name, e.g. Amazon IN, Flipkart, MDComputers."`
	Link   string `json:"link" jsonschema_description:"A realistic placeholder affiliate link for the vendor."`
	Price  int    `json:"price" jsonschema_description:"Price of the product from this vendor in INR."`
}

type Review struct {
	Source  string  `json:"source" jsonschema_description:"Source of the review, e.g. TechSpot, Gadgets360, User Review."`
	Author  string  `json:"author" jsonschema_description:"Name of the reviewer."`
	Rating  float64 `json:"rating" jsonschema_description:"A rating from 1 to 5, decimals like 4.5 allowed."`
	Content string  `json:"content" jsonschema_description:"A brief, realistic review text."`
}

// Batch is the envelope every generation request returns.
type Batch struct {
	Recommendations []Product `json:"recommendations" jsonschema_description:"A list of PC recommendations. When based on user input the first one is the best match."`
}

func (b *Batch) Titles() []string {
	if b == nil {
		return nil
	}
	titles := make([]string, 0, len(b.Recommendations))
	for _, p := range b.Recommendations {
		titles = append(titles, p.Title)
	}
	return titles
}
