package k8s

import (
	"fmt"
	"os"
	"path/filepath"

	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
)

// KubeconfigPath returns explicit when set, else ~/.kube/config
func KubeconfigPath(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	home := os.Getenv("HOME")
	if home == "" {
		return "", fmt.Errorf("HOME environment variable not set and no kubeconfig provided")
	}
	return filepath.Join(home, ".kube", "config"), nil
}

// RESTConfig builds a client config for the hub from a kubeconfig file and
// an optional context override
func RESTConfig(kubeconfig, contextName string) (*rest.Config, error) {
	path, err := KubeconfigPath(kubeconfig)
	if err != nil {
		return nil, err
	}

	loadingRules := &clientcmd.ClientConfigLoadingRules{ExplicitPath: path}
	overrides := &clientcmd.ConfigOverrides{}
	if contextName != "" {
		overrides.CurrentContext = contextName
	}

	cfg, err := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(loadingRules, overrides).ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("error building kubeconfig: %w", err)
	}
	return cfg, nil
}

// CurrentContext returns the context a kubeconfig selects, honouring an override
func CurrentContext(kubeconfig, override string) (string, error) {
	if override != "" {
		return override, nil
	}
	path, err := KubeconfigPath(kubeconfig)
	if err != nil {
		return "", err
	}
	cfg, err := clientcmd.LoadFromFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to load kubeconfig: %w", err)
	}
	return cfg.CurrentContext, nil
}
