package catalog

import (
	"time"

	"github.com/Zachkp/showcase/internal/i18n"
)

var (
	AboutIntro = map[i18n.Locale]Caption{
		i18n.Portuguese: {
			Title:    "Rafael",
			Subtitle: "Modelo, designer e anfitrião",
			Text: `Trabalho com imagem há mais de dez anos. Cada projeto começa com uma conversa
	e termina com algo que conta a sua história, seja na frente das câmeras ou por trás delas.`,
			CTALabel: "Ver portfólio",
		},
		i18n.English: {
			Title:    "Rafael",
			Subtitle: "Model, designer and host",
			Text: `I have been working with image for more than ten years. Every project starts with a
	conversation and ends with something that tells your story, in front of the camera or behind it.`,
			CTALabel: "See portfolio",
		},
		i18n.Spanish: {
			Title:    "Rafael",
			Subtitle: "Modelo, diseñador y anfitrión",
			Text: `Trabajo con la imagen desde hace más de diez años. Cada proyecto empieza con una
	conversación y termina con algo que cuenta tu historia, delante o detrás de la cámara.`,
			CTALabel: "Ver portafolio",
		},
	}

	AboutModel = map[i18n.Locale]Caption{
		i18n.Portuguese: {
			Title:    "Modelo",
			Subtitle: "Editorial, moda e campanhas",
			Text:     `Ensaios editoriais, desfiles e campanhas publicitárias com direção de arte própria.`,
			CTALabel: "Conhecer trabalhos",
		},
		i18n.English: {
			Title:    "Model",
			Subtitle: "Editorial, fashion and campaigns",
			Text:     `Editorial shoots, runway shows and advertising campaigns with in-house art direction.`,
			CTALabel: "See the work",
		},
		i18n.Spanish: {
			Title:    "Modelo",
			Subtitle: "Editorial, moda y campañas",
			Text:     `Sesiones editoriales, desfiles y campañas publicitarias con dirección de arte propia.`,
			CTALabel: "Ver trabajos",
		},
	}

	AboutDesign = map[i18n.Locale]Caption{
		i18n.Portuguese: {
			Title:    "Design",
			Subtitle: "Identidade visual e peças digitais",
			Text:     `Logotipos, identidades e materiais para redes sociais pensados para a sua marca.`,
			CTALabel: "Ver design",
		},
		i18n.English: {
			Title:    "Design",
			Subtitle: "Visual identity and digital pieces",
			Text:     `Logos, brand identities and social media material built around your brand.`,
			CTALabel: "See design",
		},
		// Spanish captions fall back to Portuguese until translated.
	}

	AboutAesthetic = map[i18n.Locale]Caption{
		i18n.Portuguese: {
			Title:    "Estética",
			Subtitle: "Cuidado com a imagem pessoal",
			Text:     `Consultoria de imagem, harmonização e cuidados para quem vive de aparecer.`,
			CTALabel: "Ver serviços",
		},
		i18n.English: {
			Title:    "Aesthetics",
			Subtitle: "Personal image care",
			Text:     `Image consulting, harmonization and care for people whose work is to be seen.`,
			CTALabel: "See services",
		},
		i18n.Spanish: {
			Title:    "Estética",
			Subtitle: "Cuidado de la imagen personal",
			Text:     `Asesoría de imagen, armonización y cuidados para quien vive de su imagen.`,
			CTALabel: "Ver servicios",
		},
	}

	AboutAccommodation = map[i18n.Locale]Caption{
		i18n.Portuguese: {
			Title:    "Hospedagem",
			Subtitle: "Um lugar para ficar",
			Text:     `Acomodação completa com wi-fi, boa localização e avaliações de quem já ficou.`,
			CTALabel: "Conhecer o espaço",
		},
		i18n.English: {
			Title:    "Accommodation",
			Subtitle: "A place to stay",
			Text:     `Fully equipped place with wi-fi, a great location and reviews from past guests.`,
			CTALabel: "See the place",
		},
		i18n.Spanish: {
			Title:    "Hospedaje",
			Subtitle: "Un lugar para quedarse",
			Text:     `Alojamiento completo con wi-fi, buena ubicación y reseñas de huéspedes anteriores.`,
			CTALabel: "Ver el espacio",
		},
	}
)

func aestheticService(title, text string) map[i18n.Locale]Caption {
	return map[i18n.Locale]Caption{i18n.Fallback: {Title: title, Text: text}}
}

// Builtin returns the decks the site ships with.
func Builtin() []DeckSpec {
	return []DeckSpec{
		{
			Name:     "about",
			Autoplay: true,
			Interval: 6 * time.Second,
			Slides: []SlideSpec{
				{Src: "/images/rafaelimage1.jpeg", CTAHref: "#portfolio", Captions: AboutIntro},
				{Src: "/images/rafaelimage2.jpeg", CTAHref: "#modelo", Captions: AboutModel},
				{Src: "/images/designimage.jpg", CTAHref: "#design", Captions: AboutDesign},
				{Src: "/images/aestheticimage.jpg", CTAHref: "#estetica", Captions: AboutAesthetic},
				{Src: "/images/hospedagemimage.jpeg", CTAHref: "#hospedagem", Captions: AboutAccommodation},
			},
		},
		{
			Name:         "aesthetic",
			Autoplay:     true,
			Interval:     5 * time.Second,
			// Only the text-heavy service cards hold still under the pointer.
			PauseOnHover: true,
			Slides: []SlideSpec{
				{Src: "/images/aesthetic-1.jpg", Captions: aestheticService("Consultoria de imagem", "Estilo e presença para o dia a dia e para as câmeras.")},
				{Src: "/images/aesthetic-2.jpg", Captions: aestheticService("Coloração pessoal", "As cores que valorizam o seu tom de pele.")},
				{Src: "/images/aesthetic-3.jpg", Captions: aestheticService("Fotografia", "Ensaios pensados para portfólio e redes sociais.")},
				{Src: "/images/aesthetic-4.jpg", Captions: aestheticService("Skincare", "Rotinas de cuidado com a pele.")},
				{Src: "/images/aesthetic-5.jpg", Captions: aestheticService("Harmonização", "Indicação de profissionais de confiança.")},
				{Src: "/images/aesthetic-6.jpg", Captions: aestheticService("Acessórios", "Curadoria de peças para completar o visual.")},
			},
		},
		{
			Name:     "accommodation",
			Autoplay: true,
			Interval: 4 * time.Second,
			Slides: []SlideSpec{
				{Src: "/images/accomodation-1.jpeg"},
				{Src: "/images/accomodation-2.jpeg"},
				{Src: "/images/accomodation-3.jpeg"},
				{Src: "/images/accomodation-4.jpeg"},
				{Src: "/images/accomodation-5.jpeg"},
			},
		},
	}
}
