package tag

import "strings"

const separator = " + "

// Tag records where an entity was read from.
type Tag struct {
	FileName    string `yaml:"file_name,omitempty"`
	Description string `yaml:"description,omitempty"`
}

func New(fileName, description string) Tag {
	return Tag{FileName: fileName, Description: description}
}

// Append merges other into a copy of t. Parts already present are not
// repeated and empty parts are skipped.
func (t Tag) Append(other Tag) Tag {
	return Tag{
		FileName:    join(t.FileName, other.FileName),
		Description: join(t.Description, other.Description),
	}
}

func (t Tag) String() string {
	if t.Description == "" {
		return "File: " + t.FileName
	}
	return "File: " + t.FileName + "\n Description: " + t.Description
}

func join(a, b string) string {
	if b == "" {
		return a
	}
	if a == "" {
		return b
	}
	for _, part := range strings.Split(a, separator) {
		if part == b {
			return a
		}
	}
	return a + separator + b
}
