package rbac

// grant is one permission row in the static policy table.
type grant struct {
	Role     string
	Resource string
	Action   string
}

// inheritance maps a role to the roles whose grants it also receives.
// SuperAdministrador tops the chain and additionally owns the rbac resource.
var inheritance = map[string][]string{
	"SuperAdministrador":         {"Administrador"},
	"Administrador":              {"RecursosHumanos", "Finanzas", "Ventas", "Arriendo"},
	"Mantenciones de Maquinaria": {"Mecánico"},
}

// grants is the whole permission table. Roles are business roles, not
// per-user assignments, so the table is fixed at startup.
var grants = []grant{
	{"SuperAdministrador", "rbac", "read"},
	{"SuperAdministrador", "user", "update"},

	{"Administrador", "user", "read"},
	{"Administrador", "user", "update"},
	{"Administrador", "machinery", "create"},
	{"Administrador", "machinery", "update"},
	{"Administrador", "machinery", "delete"},

	{"RecursosHumanos", "worker", "read"},
	{"RecursosHumanos", "worker", "create"},
	{"RecursosHumanos", "worker", "update"},
	{"RecursosHumanos", "worker", "delete"},
	{"RecursosHumanos", "employment_file", "read"},
	{"RecursosHumanos", "employment_file", "update"},
	{"RecursosHumanos", "bonus", "read"},
	{"RecursosHumanos", "bonus", "create"},
	{"RecursosHumanos", "bonus", "update"},
	{"RecursosHumanos", "bonus", "delete"},
	{"RecursosHumanos", "bonus_assignment", "read"},
	{"RecursosHumanos", "bonus_assignment", "create"},
	{"RecursosHumanos", "bonus_assignment", "update"},
	{"RecursosHumanos", "leave", "read"},
	{"RecursosHumanos", "leave", "create"},
	{"RecursosHumanos", "leave", "approve"},
	{"RecursosHumanos", "user", "read"},
	{"RecursosHumanos", "payroll", "read"},

	{"Gerencia", "worker", "read"},
	{"Gerencia", "employment_file", "read"},
	{"Gerencia", "bonus", "read"},
	{"Gerencia", "bonus_assignment", "read"},
	{"Gerencia", "leave", "read"},
	{"Gerencia", "leave", "approve"},
	{"Gerencia", "payroll", "read"},
	{"Gerencia", "client", "read"},
	{"Gerencia", "machinery", "read"},
	{"Gerencia", "rental", "read"},

	{"Ventas", "client", "read"},
	{"Ventas", "client", "create"},
	{"Ventas", "client", "update"},
	{"Ventas", "client", "delete"},

	{"Arriendo", "client", "read"},
	{"Arriendo", "machinery", "read"},
	{"Arriendo", "rental", "read"},
	{"Arriendo", "rental", "create"},
	{"Arriendo", "rental", "update"},

	{"Finanzas", "payroll", "read"},
	{"Finanzas", "payroll", "create"},
	{"Finanzas", "payroll", "approve"},
	{"Finanzas", "payroll", "pay"},
	{"Finanzas", "employment_file", "read"},
	{"Finanzas", "bonus", "read"},
	{"Finanzas", "bonus_assignment", "read"},
	{"Finanzas", "rental", "read"},

	{"Mecánico", "machinery", "read"},
	{"Mecánico", "machinery", "update"},

	{"Mantenciones de Maquinaria", "rental", "read"},

	{"Usuario", "leave", "read"},
	{"Usuario", "leave", "create"},
	{"Usuario", "employment_file", "read"},
	{"Usuario", "bonus_assignment", "read"},
	{"Usuario", "payroll", "read"},
}
