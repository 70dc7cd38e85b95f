// Package access contiene la política de roles del back-office.
package access

// Slugs de los roles del sistema.
const (
	RoleAdmin           = "admin"
	RoleRespAdmContable = "resp_adm_contable"
	RoleRespTI          = "resp_ti"
)

// Allowed decide si un llamador con callerRoles puede acceder a un recurso que exige required.
// "admin" es comodín: pertenece a cualquier conjunto requerido. Un conjunto requerido vacío niega el acceso.
func Allowed(callerRoles, required []string) bool {
	if len(required) == 0 {
		return false
	}
	for _, r := range callerRoles {
		if r == RoleAdmin {
			return true
		}
	}
	for _, r := range callerRoles {
		for _, want := range required {
			if r == want {
				return true
			}
		}
	}
	return false
}
