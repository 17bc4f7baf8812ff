package service

import (
	"fmt"

	"github.com/flightwise-ai/travel-assistant/internal/llm"
)

// Per-call-site completion tunings. Classification, code resolution and offer
// formatting follow fixed templates and run without a reasoning budget;
// activity recommendations trade latency for quality.
var (
	intentOptions      = llm.Options{MaxOutputTokens: 500, Temperature: 0.4, ThinkingBudget: 0}
	resolveOptions     = llm.Options{MaxOutputTokens: 20, Temperature: 0.1, ThinkingBudget: 0}
	flightReplyOptions = llm.Options{MaxOutputTokens: 300, Temperature: 0.1, ThinkingBudget: 0}
	activitiesOptions  = llm.Options{MaxOutputTokens: 1200, Temperature: 0.8, ThinkingBudget: 512}
)

// intentPrompt asks the model to classify the message AND, for the simple
// variants, produce the final reply in the same call. Only a complete flight
// request or a known-city activities request needs a second round trip.
func intentPrompt(message, history, today string) string {
	return fmt.Sprintf(`Eres FlightWise, asistente de viajes amable. Hoy: %s.

Historial:
%s

Mensaje: %s

Responde SOLO JSON sin markdown, eligiendo uno de estos formatos:

Vuelos con todos los datos:
{"intent":"ask_flights","origin":"ciudad","destination":"ciudad","date":"YYYY-MM-DD","returnDate":"","adults":1,"missing":[]}

Vuelos con datos incompletos (en response escribe UNA pregunta amable pidiendo lo que falta):
{"intent":"ask_flights","origin":"","destination":"","date":"","returnDate":"","adults":1,"missing":["origin","date"],"response":"Pregunta aquí"}

Actividades en ciudad conocida:
{"intent":"ask_activities","city":"ciudad","response":""}

Actividades sin ciudad (en response pregunta cuál ciudad):
{"intent":"ask_activities","city":"","response":"Pregunta aquí"}

Cualquier otro mensaje (en response escribe la respuesta directa, máximo 2 líneas, tono cálido):
{"intent":"chat","response":"Respuesta aquí"}

JSON:`, today, history, message)
}

func airportCodePrompt(city string) string {
	return fmt.Sprintf("Código IATA de %s. Solo las 3 letras en mayúsculas, nada más.", city)
}

func flightReplyPrompt(flightData string) string {
	return fmt.Sprintf(`Extrae los 3 vuelos más económicos de estos datos JSON y preséntalos EXACTAMENTE en este formato, con una línea en blanco entre cada vuelo, sin emojis, sin texto adicional:

Aerolínea: $XX USD / $XX.XXX COP | HH:MM | Xh Xm | Directo

Aerolínea: $XX USD / $XX.XXX COP | HH:MM | Xh Xm | 1 escala

Reglas:
- Exactamente 3 entradas separadas por línea en blanco (o menos si no hay suficientes vuelos)
- Sin encabezados, sin texto antes ni después
- Precio COP con puntos como separador de miles
- Si no hay vuelos: "No hay vuelos disponibles. ¿Te gustaría probar otra fecha o destino?"

Datos: %s`, flightData)
}

func activitiesPrompt(city string) string {
	return fmt.Sprintf(`Eres FlightWise, guía de viajes. Qué hacer en %s.

Responde EXACTAMENTE en este formato, cada ítem en su propia línea (usa saltos de linea entre cada lugar), sin párrafos introductorios:

🏛️ Lugar1: Una línea de descripción.
🌿 Lugar2: Una línea de descripción.
🎭 Lugar3: Una línea de descripción.
🎨 Lugar4: Una línea de descripción.

🍽️ Plato1: Una línea de descripción.
🥘 Plato2: Una línea de descripción.

💡 Consejo práctico en una línea o dos.

Reglas:
- Sin introducción ni despedida
- Cada ítem en su propia línea
- Línea en blanco entre cada sección (actividades, gastronomía, consejo)
- Al momento de usar nombres, ponlos en negrita
- Tono cálido y muy motivador`, city)
}
