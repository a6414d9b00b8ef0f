// Package kubernetes implements the cluster client on client-go.
package kubernetes

import (
	"fmt"
	"slices"
	"sync"

	"github.com/samber/lo"
	"k8s.io/apimachinery/pkg/api/meta"
	"k8s.io/client-go/discovery"
	"k8s.io/client-go/discovery/cached/memory"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/restmapper"
	"k8s.io/client-go/tools/clientcmd"
	clientcmdapi "k8s.io/client-go/tools/clientcmd/api"

	"github.com/iac-studio/converge/internal/port"
)

// NewClientset uses the in-cluster config when the kubeconfig path is empty.
// Credentials in kube.Env reach the exec plugins of the kubeconfig.
func NewClientset(kube port.KubeAccess) (kubernetes.Interface, *rest.Config, error) {
	var cfg *rest.Config
	var err error

	if kube.KubeconfigPath != "" {
		var cc clientcmd.ClientConfig
		cc, err = ClientConfig(kube, "")
		if err == nil {
			cfg, err = cc.ClientConfig()
		}
	} else {
		cfg, err = rest.InClusterConfig()
	}
	if err != nil {
		return nil, nil, err
	}

	cs, err := kubernetes.NewForConfig(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cs, cfg, nil
}

// ClientConfig loads the kubeconfig of kube with its credentials injected.
// An empty path falls back to the default loading rules, in-cluster included.
func ClientConfig(kube port.KubeAccess, namespace string) (clientcmd.ClientConfig, error) {
	overrides := &clientcmd.ConfigOverrides{}
	if namespace != "" {
		overrides.Context.Namespace = namespace
	}
	if kube.KubeconfigPath == "" {
		return clientcmd.NewNonInteractiveDeferredLoadingClientConfig(clientcmd.NewDefaultClientConfigLoadingRules(), overrides), nil
	}

	raw, err := clientcmd.LoadFromFile(kube.KubeconfigPath)
	if err != nil {
		return nil, fmt.Errorf("load kubeconfig %s: %w", kube.KubeconfigPath, err)
	}
	InjectExecEnv(raw, kube.Env)
	return clientcmd.NewDefaultClientConfig(*raw, overrides), nil
}

// InjectExecEnv sets env on every exec credential plugin of cfg. Values in env replace existing ones.
func InjectExecEnv(cfg *clientcmdapi.Config, env map[string]string) {
	if len(env) == 0 {
		return
	}
	names := lo.Keys(env)
	slices.Sort(names)

	for _, auth := range cfg.AuthInfos {
		if auth == nil || auth.Exec == nil {
			continue
		}
		vars := lo.Reject(auth.Exec.Env, func(v clientcmdapi.ExecEnvVar, _ int) bool {
			_, ok := env[v.Name]
			return ok
		})
		for _, name := range names {
			vars = append(vars, clientcmdapi.ExecEnvVar{Name: name, Value: env[name]})
		}
		auth.Exec.Env = vars
	}
}

// RESTClientGetter hands helm a client config built by ClientConfig.
type RESTClientGetter struct {
	clientConfig clientcmd.ClientConfig

	once      sync.Once
	discovery discovery.CachedDiscoveryInterface
	err       error
}

func NewRESTClientGetter(kube port.KubeAccess, namespace string) (*RESTClientGetter, error) {
	cc, err := ClientConfig(kube, namespace)
	if err != nil {
		return nil, err
	}
	return &RESTClientGetter{clientConfig: cc}, nil
}

func (g *RESTClientGetter) ToRESTConfig() (*rest.Config, error) {
	return g.clientConfig.ClientConfig()
}

func (g *RESTClientGetter) ToRawKubeConfigLoader() clientcmd.ClientConfig {
	return g.clientConfig
}

func (g *RESTClientGetter) ToDiscoveryClient() (discovery.CachedDiscoveryInterface, error) {
	g.once.Do(func() {
		cfg, err := g.ToRESTConfig()
		if err != nil {
			g.err = err
			return
		}
		dc, err := discovery.NewDiscoveryClientForConfig(cfg)
		if err != nil {
			g.err = err
			return
		}
		g.discovery = memory.NewMemCacheClient(dc)
	})
	return g.discovery, g.err
}

func (g *RESTClientGetter) ToRESTMapper() (meta.RESTMapper, error) {
	dc, err := g.ToDiscoveryClient()
	if err != nil {
		return nil, err
	}
	return restmapper.NewDeferredDiscoveryRESTMapper(dc), nil
}
