package models

// Values used when the store holds no row yet (first-run bootstrap) and for
// demo seeding.

var DefaultHomeTab = ThemeTab{ID: HomeTabID, Title: "Início"}

var DefaultTabs = []ThemeTab{
	DefaultHomeTab,
	{ID: "para-casa", Title: "Para Casa", Description: "Produtos personalizados que trazem aconchego e identidade para o seu lar."},
	{ID: "corporativo", Title: "Brindes Corporativos", Description: "Soluções criativas e personalizadas para fortalecer a marca da sua empresa."},
	{ID: "comemorativas", Title: "Datas Comemorativas", Description: "Presentes únicos para celebrar momentos especiais como Dia das Mães, Natal e aniversários."},
}

var DefaultProducts = []Product{
	{
		Name:        "Tábua de Churrasco Personalizada",
		Description: "Tábua de madeira nobre com gravação a laser do seu nome, time ou logo. Perfeita para presentear e impressionar nos encontros.",
		Price:       159.90,
		ShowPrice:   true,
		ImageURL:    "https://picsum.photos/id/219/400/400",
		TabID:       "para-casa",
	},
	{
		Name:        "Copo Térmico com Gravação",
		Description: "Mantenha sua bebida na temperatura ideal com estilo. Personalizamos copos térmicos com nomes, frases ou logotipos de empresas.",
		Price:       119.90,
		ShowPrice:   true,
		ImageURL:    "https://picsum.photos/id/983/400/400",
		TabID:       "corporativo",
	},
	{
		Name:        "Placa de Maternidade em MDF",
		Description: "Um toque de carinho para o quarto do bebê. Placas em MDF com corte a laser e design personalizado com o nome da criança.",
		Price:       89.90,
		ShowPrice:   false,
		ImageURL:    "https://picsum.photos/id/1020/400/400",
		TabID:       "comemorativas",
	},
	{
		Name:        "Caixa para Vinho em MDF",
		Description: "Embalagem sofisticada para presentear com vinhos. Caixa em MDF com gravação a laser, ideal para brindes corporativos de fim de ano.",
		Price:       75.00,
		ShowPrice:   true,
		ImageURL:    "https://picsum.photos/id/1056/400/400",
		TabID:       "corporativo",
	},
}

var DefaultTestimonials = []Testimonial{
	{Author: "Ana Silva", Text: "Amei a tábua de frios personalizada! Qualidade impecável e a gravação ficou perfeita. Superou minhas expectativas!"},
	{Author: "Carlos Pereira - TechCorp", Text: "Os brindes corporativos fizeram sucesso no nosso evento. A CAMPOARTESANA entregou tudo no prazo e com um acabamento excelente."},
	{Author: "Mariana Costa", Text: "O presente do Dia dos Pais ficou incrível. Meu pai adorou o copo térmico com o nome dele. Atendimento nota 10!"},
}

var DefaultPromotion = Promotion{
	ID:          PromotionID,
	Title:       "Personalize Seus Momentos ✨",
	Description: "Transformamos suas ideias em presentes únicos. Gravação e corte a laser em MDF, copos, tábuas e muito mais. Fale conosco!",
	ImageURL:    "https://picsum.photos/id/431/1200/400",
	Active:      true,
}

var DefaultSiteContent = SiteContent{
	ID:                    SiteContentID,
	CompanyName:           "CAMPOARTESANA",
	About:                 "Na CAMPOARTESANA, nossa paixão é transformar madeira e outros materiais em peças únicas e cheias de significado. Cada peça é feita com cuidado, precisão e um toque de criatividade, utilizando tecnologia de corte e gravação a laser.",
	FeaturedProductsTitle: "Nossos Destaques",
	WhatsAppNumber:        "5569992079671",
	WhatsAppMessage:       "Olá! Tenho interesse nos seus produtos.",
}

// PresetPalettes is local configuration; it is never persisted.
var PresetPalettes = []ColorPalette{
	{Name: "Rústico Chic", Colors: Colors{Primary: "#A0522D", Secondary: "#F5DEB3", Accent: "#696969", Base100: "#FFFFFF", BaseContent: "#333333"}},
	{Name: "Moderno & Sutil", Colors: Colors{Primary: "#4682B4", Secondary: "#F0F8FF", Accent: "#FFD700", Base100: "#FFFFFF", BaseContent: "#2F4F4F"}},
	{Name: "Vibrante", Colors: Colors{Primary: "#D2691E", Secondary: "#FFF8DC", Accent: "#008080", Base100: "#FAFAFA", BaseContent: "#4B5563"}},
	{Name: "Clássico", Colors: Colors{Primary: "#2F4F4F", Secondary: "#DCDCDC", Accent: "#BDB76B", Base100: "#F5F5F5", BaseContent: "#000000"}},
}

// DefaultPalette is the theme used until one is saved.
var DefaultPalette = PresetPalettes[0]

// DefaultClientConfig is served for the master domain (no tenant slug).
var DefaultClientConfig = ClientConfig{
	Slug:         "default",
	CompanyName:  "Vitrine (Master)",
	LogoURL:      "/default-logo.svg",
	PrimaryColor: "#0369A1",
}

// PresetPalette finds a preset by its display name.
func PresetPalette(name string) (ColorPalette, bool) {
	for _, p := range PresetPalettes {
		if p.Name == name {
			return p, true
		}
	}
	return ColorPalette{}, false
}
