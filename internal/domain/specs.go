package domain

import "encoding/json"

// MotorcycleSpecs is the free-form technical sheet, keyed by section then
// field. Only meaningful for motorcycle-family products.
type MotorcycleSpecs map[string]map[string]string

// Spec sections in display order.
var SpecSections = []string{"motor", "transmision", "chasis", "electrico", "dimension", "garantia"}

// SpecFields lists the known fields per section, in display order.
var SpecFields = map[string][]string{
	"motor":       {"motor", "potencia_maxima", "torque_maximo", "diametro_carrera", "relacion_compresion", "sistema_combustible", "enfriamiento"},
	"transmision": {"tipo", "embrague", "transmision", "unidad_final"},
	"chasis":      {"suspension_delantera", "suspension_trasera", "frenos_delantero", "frenos_trasero", "cauchos_delantero", "cauchos_trasero", "capacidad_combustible", "color"},
	"electrico":   {"encendido", "bujias", "faro", "luz_freno", "luces_cruce"},
	"dimension":   {"tamano_caja", "longitud", "ancho", "altura", "distancia_ejes", "capacidad_carga", "peso"},
	"garantia":    {"tiempo"},
}

// SpecSectionTitles maps section keys to their display titles.
var SpecSectionTitles = map[string]string{
	"motor":       "Motor",
	"transmision": "Transmisión",
	"chasis":      "Chasis",
	"electrico":   "Sistema Eléctrico",
	"dimension":   "Dimensiones",
	"garantia":    "Garantía",
}

// SpecFieldLabels maps field keys to their display labels.
var SpecFieldLabels = map[string]string{
	"motor":                 "Tipo de Motor",
	"potencia_maxima":       "Potencia Máxima",
	"torque_maximo":         "Torque Máximo",
	"diametro_carrera":      "Diámetro x Carrera",
	"relacion_compresion":   "Relación de Compresión",
	"sistema_combustible":   "Sistema de Combustible",
	"enfriamiento":          "Enfriamiento",
	"tipo":                  "Tipo",
	"embrague":              "Embrague/Clutch",
	"transmision":           "Transmisión",
	"unidad_final":          "Unidad Final",
	"suspension_delantera":  "Suspensión Delantera",
	"suspension_trasera":    "Suspensión Trasera",
	"frenos_delantero":      "Frenos Delantero",
	"frenos_trasero":        "Frenos Trasero",
	"cauchos_delantero":     "Cauchos Delantero",
	"cauchos_trasero":       "Cauchos Trasero",
	"capacidad_combustible": "Capacidad de Combustible",
	"color":                 "Colores Disponibles",
	"encendido":             "Sistema de Encendido",
	"bujias":                "Bujías",
	"faro":                  "Faro",
	"luz_freno":             "Luz de Freno",
	"luces_cruce":           "Luces de Cruce",
	"tamano_caja":           "Tamaño de Caja",
	"longitud":              "Longitud",
	"ancho":                 "Ancho",
	"altura":                "Altura",
	"distancia_ejes":        "Distancia entre Ejes",
	"capacidad_carga":       "Capacidad de Carga",
	"peso":                  "Peso en Seco",
	"tiempo":                "Tiempo de Garantía",
}

// Specs decodes the product's technical sheet. Malformed or missing JSON
// yields an empty sheet, never an error.
func (p Product) Specs() MotorcycleSpecs {
	if p.SpecsJSON == nil || *p.SpecsJSON == "" {
		return MotorcycleSpecs{}
	}
	var s MotorcycleSpecs
	if err := json.Unmarshal([]byte(*p.SpecsJSON), &s); err != nil {
		return MotorcycleSpecs{}
	}
	return s
}
