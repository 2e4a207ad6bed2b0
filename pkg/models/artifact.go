package models

// DocumentKind identifies one of the deliverable categories produced by a
// consulting engagement.
type DocumentKind string

const (
	KindDiscovery    DocumentKind = "discovery"
	KindSOW          DocumentKind = "sow"
	KindArchitecture DocumentKind = "tech"
	KindRoadmap      DocumentKind = "roadmap"
	KindCoordination DocumentKind = "coordination"
)

// KindOrder is the canonical ordering of document kinds used when rendering
// reports and iterating artifact maps deterministically.
var KindOrder = []DocumentKind{
	KindDiscovery,
	KindSOW,
	KindArchitecture,
	KindRoadmap,
	KindCoordination,
}

// IsValid reports whether k is one of the known document kinds.
func (k DocumentKind) IsValid() bool {
	for _, known := range KindOrder {
		if k == known {
			return true
		}
	}
	return false
}

// Title returns the human-readable name of the document kind.
func (k DocumentKind) Title() string {
	switch k {
	case KindDiscovery:
		return "Discovery Report"
	case KindSOW:
		return "Scope of Work"
	case KindArchitecture:
		return "Technical Architecture"
	case KindRoadmap:
		return "Implementation Roadmap"
	case KindCoordination:
		return "Coordination Report"
	default:
		return string(k)
	}
}

// Artifact is one generated deliverable under evaluation. Artifacts are
// immutable inputs for the duration of a validation pass.
type Artifact struct {
	Kind DocumentKind
	Text string
}

// ByteLength returns the size of the artifact text in bytes.
func (a Artifact) ByteLength() int {
	return len(a.Text)
}
