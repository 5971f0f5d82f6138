package authz

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// permissionsFile — формат PERMISSIONS_FILE:
//
//	roles:
//	  operator: [bulletins:view, bulletins:update]
type permissionsFile struct {
	Roles map[string][]string `yaml:"roles"`
}

// LoadGatekeeper читает файл переопределений. Роли из файла заменяют
// соответствующие роли матрицы по умолчанию целиком; пустой путь — матрица по умолчанию.
func LoadGatekeeper(path string) (*Gatekeeper, error) {
	if path == "" {
		return NewDefaultGatekeeper(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать файл прав %s: %w", path, err)
	}
	return ParseGatekeeper(raw)
}

func ParseGatekeeper(raw []byte) (*Gatekeeper, error) {
	var file permissionsFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("ошибка разбора файла прав: %w", err)
	}

	known := make(map[string]bool, len(All))
	for _, p := range All {
		known[p] = true
	}

	matrix := make(map[string][]string, len(defaultRolePermissions))
	for role, perms := range defaultRolePermissions {
		matrix[role] = perms
	}
	for role, perms := range file.Roles {
		if !IsKnownRole(role) {
			return nil, fmt.Errorf("неизвестная роль %q в файле прав", role)
		}
		for _, p := range perms {
			if !known[p] {
				return nil, fmt.Errorf("неизвестное право %q у роли %q", p, role)
			}
		}
		matrix[role] = perms
	}
	return NewGatekeeper(matrix), nil
}
