package topology

const annotationPrefix = "apps.open-cluster-management.io/"

// Git source annotations set on subscriptions. The github-* keys are the
// deprecated spellings of the git-* keys.
const (
	AnnotationGitBranch     = annotationPrefix + "git-branch"
	AnnotationGithubBranch  = annotationPrefix + "github-branch"
	AnnotationGitPath       = annotationPrefix + "git-path"
	AnnotationGithubPath    = annotationPrefix + "github-path"
	AnnotationGitTag        = annotationPrefix + "git-tag"
	AnnotationGitCommit     = annotationPrefix + "git-desired-commit"
	AnnotationReconcileRate = annotationPrefix + "reconcile-rate"
)

// Annotations are the resolved git source settings of a resource.
// A nil field means the annotation is not set.
type Annotations struct {
	Branch        *string
	Path          *string
	Tag           *string
	Commit        *string
	ReconcileRate *string
}

// ResolveAnnotations picks the git source settings out of an annotation map.
// The current key wins when it has a value; an empty or missing current key
// falls back to its deprecated alias.
func ResolveAnnotations(annotations map[string]string) Annotations {
	return Annotations{
		Branch:        resolve(annotations, AnnotationGitBranch, AnnotationGithubBranch),
		Path:          resolve(annotations, AnnotationGitPath, AnnotationGithubPath),
		Tag:           resolve(annotations, AnnotationGitTag),
		Commit:        resolve(annotations, AnnotationGitCommit),
		ReconcileRate: resolve(annotations, AnnotationReconcileRate),
	}
}

// resolve returns the first non-empty value among keys, else the first
// key that is present with an empty value
func resolve(annotations map[string]string, keys ...string) *string {
	var empty *string
	for _, key := range keys {
		v, ok := annotations[key]
		if !ok {
			continue
		}
		if v != "" {
			return &v
		}
		if empty == nil {
			empty = &v
		}
	}
	return empty
}

// nodeAnnotations reads metadata.annotations from the raw manifest
func nodeAnnotations(node *GraphNode) map[string]string {
	v, ok := lookup(node.Specs.Raw, P("metadata", "annotations"))
	if !ok {
		return nil
	}
	return stringMap(v)
}

// deref returns "" for nil
func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
