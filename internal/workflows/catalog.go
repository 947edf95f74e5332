// Package workflows declares the permit-type schemas the dashboard
// manages. Every permit type instantiates the same wizard engine; only the
// schema differs.
package workflows

import (
	"sort"

	"github.com/HerodesVe/fsr-go/internal/wizard"
)

// Workflow kinds, matching the backend resources.
const (
	KindAnteproyecto       = "anteproyecto"
	KindProyecto           = "proyecto"
	KindDemolicion         = "demolicion"
	KindHabilitacionUrbana = "habilitacion-urbana"
	KindConformidadObra    = "conformidad-obra"
	KindModificacion       = "modificacion"
	KindAmpliacion         = "ampliacion"
	KindRegularizacion     = "regularizacion"
)

var catalog = map[string]wizard.Schema{
	KindAnteproyecto: {
		Kind:     KindAnteproyecto,
		Title:    "Anteproyecto en consulta",
		Resource: "anteproyectos",
		Steps: []wizard.Step{
			{ID: "datos_generales", Title: "Datos generales", Fields: []wizard.Field{
				{Name: "client_id", Label: "Cliente", Required: true},
				{Name: "nombre_proyecto", Label: "Nombre del proyecto", Required: true},
				{Name: "tipo_obra", Label: "Tipo de obra", Required: true},
				{Name: "descripcion", Label: "Descripción"},
			}},
			{ID: "predio", Title: "Datos del predio", Fields: []wizard.Field{
				{Name: "direccion", Label: "Dirección", Required: true},
				{Name: "partida_registral", Label: "Partida registral", Required: true},
				{Name: "area_terreno", Label: "Área del terreno (m²)", Required: true},
				{Name: "partida_documento", Label: "Copia de partida", Required: true, UploadKey: "partida_registral"},
			}},
			{ID: "planos", Title: "Planos", Fields: []wizard.Field{
				{Name: "plano_ubicacion", Label: "Plano de ubicación", Required: true, UploadKey: "plano_ubicacion"},
				{Name: "plano_arquitectura", Label: "Planos de arquitectura", Required: true, UploadKey: "plano_arquitectura"},
				{Name: "memoria_descriptiva", Label: "Memoria descriptiva", UploadKey: "memoria_descriptiva"},
			}},
			{ID: "resumen", Title: "Resumen y envío", Fields: []wizard.Field{
				{Name: "fecha_presentacion", Label: "Fecha de presentación", Required: true},
				{Name: "observaciones", Label: "Observaciones"},
			}},
		},
	},
	KindProyecto: {
		Kind:     KindProyecto,
		Title:    "Proyecto de edificación",
		Resource: "proyectos",
		Steps: []wizard.Step{
			{ID: "datos_generales", Title: "Datos generales", Fields: []wizard.Field{
				{Name: "client_id", Label: "Cliente", Required: true},
				{Name: "nombre_proyecto", Label: "Nombre del proyecto", Required: true},
				{Name: "anteproyecto_id", Label: "Anteproyecto aprobado"},
				{Name: "modalidad", Label: "Modalidad de licencia", Required: true},
			}},
			{ID: "especialidades", Title: "Especialidades", Fields: []wizard.Field{
				{Name: "plano_arquitectura", Label: "Arquitectura", Required: true, UploadKey: "plano_arquitectura"},
				{Name: "plano_estructuras", Label: "Estructuras", Required: true, UploadKey: "plano_estructuras"},
				{Name: "plano_sanitarias", Label: "Instalaciones sanitarias", Required: true, UploadKey: "plano_sanitarias"},
				{Name: "plano_electricas", Label: "Instalaciones eléctricas", Required: true, UploadKey: "plano_electricas"},
			}},
			{ID: "documentacion", Title: "Documentación", Fields: []wizard.Field{
				{Name: "certificado_parametros", Label: "Certificado de parámetros", Required: true, UploadKey: "certificado_parametros"},
				{Name: "estudio_suelos", Label: "Estudio de suelos", UploadKey: "estudio_suelos"},
				{Name: "numero_recibo", Label: "Número de recibo de pago", Required: true},
			}},
			{ID: "resumen", Title: "Resumen y envío", Fields: []wizard.Field{
				{Name: "fecha_presentacion", Label: "Fecha de presentación", Required: true},
				{Name: "observaciones", Label: "Observaciones"},
			}},
		},
	},
	KindDemolicion: {
		Kind:     KindDemolicion,
		Title:    "Licencia de demolición",
		Resource: "demoliciones",
		Steps: []wizard.Step{
			{ID: "datos_generales", Title: "Datos generales", Fields: []wizard.Field{
				{Name: "client_id", Label: "Cliente", Required: true},
				{Name: "direccion", Label: "Dirección del predio", Required: true},
				{Name: "tipo_demolicion", Label: "Tipo de demolición", Required: true},
				{Name: "area_demoler", Label: "Área a demoler (m²)", Required: true},
			}},
			{ID: "sustento", Title: "Sustento técnico", Fields: []wizard.Field{
				{Name: "plano_cerco", Label: "Plano de cerco y ubicación", Required: true, UploadKey: "plano_cerco"},
				{Name: "memoria_demolicion", Label: "Memoria de demolición", Required: true, UploadKey: "memoria_demolicion"},
				{Name: "carta_seguridad", Label: "Carta de seguridad de obra", UploadKey: "carta_seguridad"},
			}},
			{ID: "resumen", Title: "Resumen y envío", Fields: []wizard.Field{
				{Name: "fecha_presentacion", Label: "Fecha de presentación", Required: true},
			}},
		},
	},
	KindHabilitacionUrbana: {
		Kind:     KindHabilitacionUrbana,
		Title:    "Habilitación urbana",
		Resource: "habilitaciones-urbanas",
		Steps: []wizard.Step{
			{ID: "datos_generales", Title: "Datos generales", Fields: []wizard.Field{
				{Name: "client_id", Label: "Cliente", Required: true},
				{Name: "denominacion", Label: "Denominación", Required: true},
				{Name: "uso_proyectado", Label: "Uso proyectado", Required: true},
			}},
			{ID: "terreno", Title: "Terreno", Fields: []wizard.Field{
				{Name: "area_bruta", Label: "Área bruta (ha)", Required: true},
				{Name: "plano_perimetrico", Label: "Plano perimétrico", Required: true, UploadKey: "plano_perimetrico"},
				{Name: "plano_trazado", Label: "Plano de trazado y lotización", Required: true, UploadKey: "plano_trazado"},
			}},
			{ID: "factibilidad", Title: "Factibilidad de servicios", Fields: []wizard.Field{
				{Name: "factibilidad_agua", Label: "Factibilidad de agua", Required: true, UploadKey: "factibilidad_agua"},
				{Name: "factibilidad_luz", Label: "Factibilidad eléctrica", Required: true, UploadKey: "factibilidad_luz"},
			}},
			{ID: "resumen", Title: "Resumen y envío", Fields: []wizard.Field{
				{Name: "fecha_presentacion", Label: "Fecha de presentación", Required: true},
			}},
		},
	},
	KindConformidadObra: {
		Kind:     KindConformidadObra,
		Title:    "Conformidad de obra",
		Resource: "conformidades-obra",
		Steps: []wizard.Step{
			{ID: "datos_generales", Title: "Datos generales", Fields: []wizard.Field{
				{Name: "client_id", Label: "Cliente", Required: true},
				{Name: "numero_licencia", Label: "Número de licencia de obra", Required: true},
				{Name: "con_variaciones", Label: "Con variaciones"},
			}},
			{ID: "obra", Title: "Obra ejecutada", Fields: []wizard.Field{
				{Name: "planos_conformidad", Label: "Planos de conformidad", Required: true, UploadKey: "planos_conformidad"},
				{Name: "declaratoria", Label: "Declaratoria de fábrica", Required: true, UploadKey: "declaratoria"},
			}},
			{ID: "resumen", Title: "Resumen y envío", Fields: []wizard.Field{
				{Name: "fecha_presentacion", Label: "Fecha de presentación", Required: true},
			}},
		},
	},
	KindModificacion: {
		Kind:     KindModificacion,
		Title:    "Modificación de proyecto",
		Resource: "modificaciones",
		Steps: []wizard.Step{
			{ID: "datos_generales", Title: "Datos generales", Fields: []wizard.Field{
				{Name: "client_id", Label: "Cliente", Required: true},
				{Name: "proyecto_id", Label: "Proyecto aprobado", Required: true},
				{Name: "motivo", Label: "Motivo de la modificación", Required: true},
			}},
			{ID: "cambios", Title: "Cambios propuestos", Fields: []wizard.Field{
				{Name: "planos_modificados", Label: "Planos modificados", Required: true, UploadKey: "planos_modificados"},
				{Name: "memoria_cambios", Label: "Memoria de cambios", UploadKey: "memoria_cambios"},
			}},
			{ID: "resumen", Title: "Resumen y envío", Fields: []wizard.Field{
				{Name: "fecha_presentacion", Label: "Fecha de presentación", Required: true},
			}},
		},
	},
	KindAmpliacion: {
		Kind:     KindAmpliacion,
		Title:    "Ampliación de edificación",
		Resource: "ampliaciones",
		Steps: []wizard.Step{
			{ID: "datos_generales", Title: "Datos generales", Fields: []wizard.Field{
				{Name: "client_id", Label: "Cliente", Required: true},
				{Name: "direccion", Label: "Dirección del predio", Required: true},
				{Name: "area_ampliacion", Label: "Área a ampliar (m²)", Required: true},
			}},
			{ID: "sustento", Title: "Sustento técnico", Fields: []wizard.Field{
				{Name: "planos_ampliacion", Label: "Planos de ampliación", Required: true, UploadKey: "planos_ampliacion"},
				{Name: "declaratoria_existente", Label: "Declaratoria existente", UploadKey: "declaratoria_existente"},
			}},
			{ID: "resumen", Title: "Resumen y envío", Fields: []wizard.Field{
				{Name: "fecha_presentacion", Label: "Fecha de presentación", Required: true},
			}},
		},
	},
	KindRegularizacion: {
		Kind:     KindRegularizacion,
		Title:    "Regularización de licencia",
		Resource: "regularizaciones",
		Steps: []wizard.Step{
			{ID: "datos_generales", Title: "Datos generales", Fields: []wizard.Field{
				{Name: "client_id", Label: "Cliente", Required: true},
				{Name: "direccion", Label: "Dirección del predio", Required: true},
				{Name: "anio_construccion", Label: "Año de construcción", Required: true},
			}},
			{ID: "sustento", Title: "Sustento", Fields: []wizard.Field{
				{Name: "planos_levantamiento", Label: "Planos de levantamiento", Required: true, UploadKey: "planos_levantamiento"},
				{Name: "carta_conformidad", Label: "Carta de conformidad estructural", Required: true, UploadKey: "carta_conformidad"},
			}},
			{ID: "resumen", Title: "Resumen y envío", Fields: []wizard.Field{
				{Name: "fecha_presentacion", Label: "Fecha de presentación", Required: true},
			}},
		},
	},
}

// ByKind returns the schema for a workflow kind.
func ByKind(kind string) (wizard.Schema, bool) {
	s, ok := catalog[kind]
	return s, ok
}

// ByResource returns the schema persisting to the given backend resource.
func ByResource(resource string) (wizard.Schema, bool) {
	for _, s := range catalog {
		if s.Resource == resource {
			return s, true
		}
	}
	return wizard.Schema{}, false
}

// Kinds lists the known workflow kinds, sorted.
func Kinds() []string {
	kinds := make([]string, 0, len(catalog))
	for k := range catalog {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Resources lists every backend resource the catalog persists to, sorted.
func Resources() []string {
	out := make([]string, 0, len(catalog))
	for _, s := range catalog {
		out = append(out, s.Resource)
	}
	sort.Strings(out)
	return out
}
