package pipeline

// ResponseEvent es la notificación de que una respuesta de red ocurrió
// durante la navegación de una página. Body es un accesor perezoso: puede
// fallar (respuesta no textual, stream ya consumido, navegación abortada) y
// en ese caso el evento simplemente no aporta hallazgos de cuerpo.
type ResponseEvent struct {
	URL     string
	Headers map[string]string
	Body    func() (string, error)
}
