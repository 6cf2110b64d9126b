package model

// Shared value types used by several payloads.

// Link is a labelled URL.
type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Button is a call-to-action button.
type Button struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

// Image is a gallery image.
type Image struct {
	URL     string `json:"url"`
	Alt     string `json:"alt,omitempty"`
	Caption string `json:"caption,omitempty"`
}

// Header is a hero/title section.
type Header struct {
	Title           string  `json:"title"`
	Subtitle        string  `json:"subtitle,omitempty"`
	Alignment       string  `json:"alignment,omitempty"`
	BackgroundImage string  `json:"backgroundImage,omitempty"`
	Button          *Button `json:"button,omitempty"`
}

func (*Header) ComponentType() Type { return TypeHeader }

// Text is a free paragraph block.
type Text struct {
	Content   string `json:"content"`
	Alignment string `json:"alignment,omitempty"`
}

func (*Text) ComponentType() Type { return TypeText }

// Profile introduces the site owner.
type Profile struct {
	Name      string `json:"name"`
	Headline  string `json:"headline,omitempty"`
	Bio       string `json:"bio,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
	Location  string `json:"location,omitempty"`
	Email     string `json:"email,omitempty"`
	Links     []Link `json:"links,omitempty"`
}

func (*Profile) ComponentType() Type { return TypeProfile }

// Gallery display modes.
const (
	GalleryGrid     = "grid"
	GalleryCarousel = "carousel"
	GalleryMarquee  = "marquee"
)

// Gallery shows a set of images as a grid, carousel or marquee.
type Gallery struct {
	Images   []Image `json:"images"`
	Mode     string  `json:"mode"`
	Columns  int     `json:"columns"`
	Spacing  string  `json:"spacing"`
	Autoplay bool    `json:"autoplay,omitempty"`
	// Interval is the autoplay period in milliseconds.
	Interval int `json:"interval,omitempty"`
}

func (*Gallery) ComponentType() Type { return TypeGallery }

// ExperienceItem is one position in a work history.
type ExperienceItem struct {
	Role        string `json:"role"`
	Company     string `json:"company"`
	Location    string `json:"location,omitempty"`
	Start       string `json:"start,omitempty"`
	End         string `json:"end,omitempty"`
	Description string `json:"description,omitempty"`
}

// Experience is a work history section.
type Experience struct {
	Experiences []ExperienceItem `json:"experiences"`
	Variant     string           `json:"variant"`
}

func (*Experience) ComponentType() Type { return TypeExperience }

// Project is one portfolio entry.
type Project struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	URL         string   `json:"url,omitempty"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// Projects is a portfolio section.
type Projects struct {
	Heading  string    `json:"heading,omitempty"`
	Projects []Project `json:"projects"`
	Layout   string    `json:"layout"`
	Autoplay bool      `json:"autoplay,omitempty"`
	Interval int       `json:"interval,omitempty"`
}

func (*Projects) ComponentType() Type { return TypeProjects }

// Service is one offered service.
type Service struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Price       string `json:"price,omitempty"`
}

// Services lists offered services.
type Services struct {
	Heading  string    `json:"heading,omitempty"`
	Services []Service `json:"services"`
}

func (*Services) ComponentType() Type { return TypeServices }

// Review is one testimonial.
type Review struct {
	Author    string `json:"author"`
	Role      string `json:"role,omitempty"`
	Quote     string `json:"quote"`
	Rating    int    `json:"rating,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// Reviews is a testimonial section shown as grid, carousel or marquee.
type Reviews struct {
	Heading  string   `json:"heading,omitempty"`
	Reviews  []Review `json:"reviews"`
	Mode     string   `json:"mode"`
	Autoplay bool     `json:"autoplay,omitempty"`
	Interval int      `json:"interval,omitempty"`
}

func (*Reviews) ComponentType() Type { return TypeReviews }

// Plan is one pricing tier.
type Plan struct {
	Name        string   `json:"name"`
	Price       string   `json:"price"`
	Period      string   `json:"period,omitempty"`
	Features    []string `json:"features,omitempty"`
	Highlighted bool     `json:"highlighted,omitempty"`
	Button      *Button  `json:"button,omitempty"`
}

// Pricing is a pricing table.
type Pricing struct {
	Heading string `json:"heading,omitempty"`
	Plans   []Plan `json:"plans"`
}

func (*Pricing) ComponentType() Type { return TypePricing }

// MenuItem is one navigation entry.
type MenuItem struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

// Navigation is the site menu bar.
type Navigation struct {
	Brand     string     `json:"brand,omitempty"`
	MenuItems []MenuItem `json:"menuItems"`
	Button    *Button    `json:"button,omitempty"`
	Sticky    bool       `json:"sticky,omitempty"`
}

func (*Navigation) ComponentType() Type { return TypeNavigation }

// Skill is a named proficiency from 0 to 100.
type Skill struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
}

// Skills lists proficiencies.
type Skills struct {
	Heading string  `json:"heading,omitempty"`
	Skills  []Skill `json:"skills"`
}

func (*Skills) ComponentType() Type { return TypeSkills }

// Contact shows contact details.
type Contact struct {
	Heading     string `json:"heading,omitempty"`
	Description string `json:"description,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Address     string `json:"address,omitempty"`
	ButtonLabel string `json:"buttonLabel,omitempty"`
}

func (*Contact) ComponentType() Type { return TypeContact }

// Spacer adds vertical space.
type Spacer struct {
	Height string `json:"height"`
}

func (*Spacer) ComponentType() Type { return TypeSpacer }

// Divider draws a horizontal rule.
type Divider struct {
	Thickness string `json:"thickness"`
	LineStyle string `json:"lineStyle"`
	Width     string `json:"width,omitempty"`
}

func (*Divider) ComponentType() Type { return TypeDivider }

// Embed holds user supplied HTML rendered inside a sandbox.
type Embed struct {
	HTML   string `json:"html"`
	Height string `json:"height"`
	Title  string `json:"title,omitempty"`
}

func (*Embed) ComponentType() Type { return TypeEmbed }

// Footer is the page footer.
type Footer struct {
	Text  string `json:"text"`
	Links []Link `json:"links,omitempty"`
}

func (*Footer) ComponentType() Type { return TypeFooter }
