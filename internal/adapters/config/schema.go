package config

// Rigfile represents the structure of the rig.yaml plan file.
type Rigfile struct {
	Version   string             `yaml:"version"`
	Workspace WorkspaceDTO       `yaml:"workspace"`
	Steps     map[string]StepDTO `yaml:"steps"`
}

// WorkspaceDTO holds settings shared by every step in the plan.
type WorkspaceDTO struct {
	Interpreter string `yaml:"interpreter"`
	DataDir     string `yaml:"dataDir"`
}

// StepDTO represents a step definition in the plan file.
type StepDTO struct {
	Kind        string            `yaml:"kind"`
	Cmd         []string          `yaml:"cmd"`
	Manifest    string            `yaml:"manifest"`
	Corpora     []string          `yaml:"corpora"`
	Input       []string          `yaml:"input"`
	Needs       []string          `yaml:"needs"`
	Environment map[string]string `yaml:"environment"`
	WorkingDir  string            `yaml:"workingDir"`
	Cache       string            `yaml:"cache"`
}
