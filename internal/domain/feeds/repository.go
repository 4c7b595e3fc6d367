package feeds

import "context"

// Table es la tabla persistida: un header implícito y una fila por evento.
// Los IDs son posiciones 1-based de filas de datos.
//
// Las implementaciones NO son seguras para uso concurrente; Service
// serializa todas las llamadas con su lock global.
type Table interface {
	// Rows devuelve las filas de datos en orden físico; Rows()[i] tiene ID i+1.
	// Incluye filas cortas: decidir si se saltean es tarea del codec.
	Rows(ctx context.Context) ([]Row, error)

	// Append agrega una fila al final y devuelve su ID (cantidad de filas de datos).
	Append(ctx context.Context, r Row) (int, error)

	// Update reemplaza la fila id con fn(filaActual). false si id está fuera de rango.
	Update(ctx context.Context, id int, fn func(Row) Row) (bool, error)

	// Remove borra físicamente la fila id. false si id está fuera de rango.
	Remove(ctx context.Context, id int) (bool, error)
}
