package domain

// Category families. The family tag decides which optional product fields
// (brand/model/year) and the technical sheet apply; display names are never
// sniffed for this.
const (
	FamilyMotorcycle = "motorcycle"
	FamilyGeneral    = "general"
)

// Product statuses.
const (
	StatusAvailable = "available"
	StatusSold      = "sold"
	StatusReserved  = "reserved"
)

type Dealership struct {
	ID       string `db:"id" json:"id"`
	Slug     string `db:"slug" json:"slug"`
	Name     string `db:"name" json:"name"`
	Email    string `db:"email" json:"email"`
	Phone    string `db:"phone" json:"phone"`
	Address  string `db:"address" json:"address"`
	IsActive bool   `db:"is_active" json:"is_active"`
}

type Category struct {
	ID           string `db:"id" json:"id"`
	DealershipID string `db:"dealership_id" json:"-"`
	Name         string `db:"name" json:"name"`
	Slug         string `db:"slug" json:"slug"`
	Description  string `db:"description" json:"description,omitempty"`
	Family       string `db:"family" json:"family"`

	Subcategories []Subcategory `db:"-" json:"subcategories,omitempty"`
}

func (c Category) IsMotorcycle() bool { return c.Family == FamilyMotorcycle }

type Subcategory struct {
	ID           string `db:"id" json:"id"`
	DealershipID string `db:"dealership_id" json:"-"`
	CategoryID   string `db:"category_id" json:"category_id"`
	Name         string `db:"name" json:"name"`
	Slug         string `db:"slug" json:"slug"`
}

// Product is the catalog entity. Price is nil for "price on request", which
// is distinct from a zero price. Brand/model/year are only populated for
// motorcycle-family products.
type Product struct {
	ID            string   `db:"id" json:"id"`
	DealershipID  string   `db:"dealership_id" json:"-"`
	CategoryID    *string  `db:"category_id" json:"category_id,omitempty"`
	SubcategoryID *string  `db:"subcategory_id" json:"subcategory_id,omitempty"`
	Name          string   `db:"name" json:"name"`
	Slug          string   `db:"slug" json:"slug"`
	Brand         *string  `db:"brand" json:"brand,omitempty"`
	Model         *string  `db:"model" json:"model,omitempty"`
	Year          *int     `db:"year" json:"year,omitempty"`
	Price         *float64 `db:"price" json:"price,omitempty"`
	Description   *string  `db:"description" json:"description,omitempty"`
	Status        string   `db:"status" json:"status"`
	SpecsJSON     *string  `db:"specs_json" json:"-"`
	CreatedAt     string   `db:"created_at" json:"created_at"`

	CategoryName    *string        `db:"category_name" json:"category_name,omitempty"`
	CategoryFamily  *string        `db:"category_family" json:"-"`
	SubcategoryName *string        `db:"subcategory_name" json:"subcategory_name,omitempty"`
	Images          []ProductImage `db:"-" json:"images,omitempty"`
}

func (p Product) IsMotorcycle() bool {
	return p.CategoryFamily != nil && *p.CategoryFamily == FamilyMotorcycle
}

// PrimaryImage returns the image flagged primary, falling back to the first
// one. The data model does not enforce exactly-one primary flag.
func (p Product) PrimaryImage() *ProductImage {
	for i := range p.Images {
		if p.Images[i].IsPrimary {
			return &p.Images[i]
		}
	}
	if len(p.Images) > 0 {
		return &p.Images[0]
	}
	return nil
}

type ProductImage struct {
	ID           string `db:"id" json:"id"`
	ProductID    string `db:"product_id" json:"-"`
	DealershipID string `db:"dealership_id" json:"-"`
	ImageURL     string `db:"image_url" json:"image_url"`
	IsPrimary    bool   `db:"is_primary" json:"is_primary"`
	DisplayOrder int    `db:"display_order" json:"display_order"`
}

type Employee struct {
	ID           string `db:"id" json:"id"`
	DealershipID string `db:"dealership_id" json:"-"`
	FullName     string `db:"full_name" json:"full_name"`
	Position     string `db:"position" json:"position,omitempty"`
	Phone        string `db:"phone" json:"phone,omitempty"`
	Whatsapp     string `db:"whatsapp" json:"whatsapp,omitempty"`
	Email        string `db:"email" json:"email,omitempty"`
	IsActive     bool   `db:"is_active" json:"is_active"`
	DisplayOrder int    `db:"display_order" json:"display_order"`
}

// SiteSettings is the per-tenant branding/contact record.
type SiteSettings struct {
	DealershipID   string `db:"dealership_id" json:"-"`
	LogoURL        string `db:"logo_url" json:"logo_url,omitempty"`
	HeroImageURL   string `db:"hero_image_url" json:"hero_image_url,omitempty"`
	HeroTitle      string `db:"hero_title" json:"hero_title,omitempty"`
	HeroSubtitle   string `db:"hero_subtitle" json:"hero_subtitle,omitempty"`
	FooterText     string `db:"footer_text" json:"footer_text,omitempty"`
	FooterAddress  string `db:"footer_address" json:"footer_address,omitempty"`
	FooterPhone    string `db:"footer_phone" json:"footer_phone,omitempty"`
	FooterEmail    string `db:"footer_email" json:"footer_email,omitempty"`
	FacebookURL    string `db:"facebook_url" json:"facebook_url,omitempty"`
	InstagramURL   string `db:"instagram_url" json:"instagram_url,omitempty"`
	TwitterURL     string `db:"twitter_url" json:"twitter_url,omitempty"`
	TiktokURL      string `db:"tiktok_url" json:"tiktok_url,omitempty"`
	YoutubeURL     string `db:"youtube_url" json:"youtube_url,omitempty"`
	MainWhatsapp   string `db:"main_whatsapp" json:"main_whatsapp,omitempty"`
	PrimaryColor   string `db:"primary_color" json:"primary_color,omitempty"`
	SecondaryColor string `db:"secondary_color" json:"secondary_color,omitempty"`
}
