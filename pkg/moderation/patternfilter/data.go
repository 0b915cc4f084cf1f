package patternfilter

import "github.com/safenest/trustpipe/pkg/domain/moderation"

// group is one ordered category of patterns. The filter reports the first
// matching group only, so ordering decides which category wins for text that
// would match several. Groups with verbatim set match the folded text with
// leetspeak left alone: emails, URLs and handles are made of the very symbols
// the leet map would rewrite.
type group struct {
	category string
	severity moderation.Severity
	verbatim bool
	patterns []string
}

// Pattern corpus, Spanish and English. Word boundaries keep "class" from
// matching "ass"; normalized input means no case or diacritic variants are
// needed here.
var groups = []group{
	{
		category: moderation.CategoryProfanity,
		severity: moderation.SeverityMedium,
		patterns: []string{
			`\b(puta|puto|mierda|gilipollas|cabron|cabrona|joder|pendejo|pendeja|imbecil|subnormal)\b`,
			`\b(fuck|fucking|shit|bitch|asshole|bastard|dickhead|motherfucker)\b`,
			`\b(idiota de mierda|hijo de puta|hija de puta)\b`,
		},
	},
	{
		category: moderation.CategoryViolence,
		severity: moderation.SeverityHigh,
		patterns: []string{
			`\b(te voy a (matar|pegar|romper|reventar|destrozar))\b`,
			`\b(voy a hacerte dano|te vas a enterar|te voy a encontrar)\b`,
			`\b(i('?| wi)ll (kill|hurt|beat|stab|shoot) you)\b`,
			`\b(kill yourself|matate|suicidate)\b`,
			`\b(amenaza de muerte|death threat)\b`,
		},
	},
	{
		category: moderation.CategorySexual,
		severity: moderation.SeverityHigh,
		patterns: []string{
			`\b(desnudo|desnuda|desnudos|sexo|sexual|porno|pornografia)\b`,
			`\b(mandame fotos? (tuyas?|sin ropa))\b`,
			`\b(nudes?|sexting|porn|naked (pic|pics|photo|photos))\b`,
			`\b(send me (a )?(naked|nude))\b`,
		},
	},
	{
		category: moderation.CategoryPersonalData,
		severity: moderation.SeverityHigh,
		verbatim: true,
		patterns: []string{
			// phone shapes: 7+ digits with optional separators or prefix
			`(\+?\d[\d\s\-.]{6,}\d)`,
			// email shapes
			`[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}`,
			// URLs
			`\b(https?://|www\.)[^\s]+`,
			// social handle solicitation
			`\b(mi (insta|instagram|tiktok|snap|snapchat|whatsapp|telegram) es)\b`,
			`\b(my (insta|instagram|tiktok|snap|snapchat|whatsapp|telegram) is)\b`,
			`\b(dame tu (numero|telefono|direccion|whatsapp))\b`,
			`\b(give me your (number|phone|address))\b`,
			`\b(vivo en la calle|mi direccion es|my address is)\b`,
		},
	},
	{
		category: moderation.CategoryMeetingRequest,
		severity: moderation.SeverityHigh,
		patterns: []string{
			`\b(quedamos en persona|nos vemos (en|a) solas|ven a mi casa|te recojo)\b`,
			`\b(no le digas a (tus padres|nadie)|que no se enteren tus padres)\b`,
			`\b(let'?s meet (up |)(alone|in person|irl))\b`,
			`\b(don'?t tell your parents|come to my (house|place))\b`,
			`\b(es nuestro secreto|our little secret)\b`,
		},
	},
}
