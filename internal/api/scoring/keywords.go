package scoring

// interestKeywords is one row of the keyword table: the substrings that mark
// a place as relevant for an interest, their weight, and the substrings that
// mark it as a mismatch.
type interestKeywords struct {
	Positive []string
	Weight   float64
	Negative []string
}

// The substring heuristic is fuzzy and tied to the Spanish wording of the
// catalog; swap the Scorer implementation to replace it.
var keywordTable = map[string]interestKeywords{
	"playas": {
		Positive: []string{"playa", "mar", "arena", "muelle", "malecón", "costa"},
		Weight:   1.5,
		Negative: []string{"piscina"},
	},
	"gastronomia_local": {
		Positive: []string{"restaurante", "comida", "cocina", "gastronom", "arepa", "pescado", "sancocho", "típic"},
		Weight:   1.5,
	},
	"cultura": {
		Positive: []string{"museo", "cultura", "arte", "teatro", "carnaval", "exposici"},
		Weight:   1.4,
	},
	"historia": {
		Positive: []string{"histór", "patrimonio", "iglesia", "monumento", "colonial", "antigu"},
		Weight:   1.3,
	},
	"naturaleza": {
		Positive: []string{"naturaleza", "reserva", "sendero", "manglar", "aves", "laguna", "bosque"},
		Weight:   1.4,
		Negative: []string{"centro comercial"},
	},
	"artesanias": {
		Positive: []string{"artesan", "tejido", "taller", "iraca", "hecho a mano"},
		Weight:   1.5,
	},
	"vida_nocturna": {
		Positive: []string{"bar", "discoteca", "rumba", "noche", "música en vivo"},
		Weight:   1.2,
		Negative: []string{"familiar", "infantil"},
	},
	"aventura": {
		Positive: []string{"aventura", "kitesurf", "surf", "deporte", "caminata", "parapente"},
		Weight:   1.3,
	},
	"deportes_acuaticos": {
		Positive: []string{"kitesurf", "surf", "buceo", "kayak", "vela", "acuátic"},
		Weight:   1.4,
	},
	"fotografia": {
		Positive: []string{"mirador", "vista", "atardecer", "panorám", "mural"},
		Weight:   1.2,
	},
}
