package authz

import (
	"bufio"
	_ "embed"
	"strings"
	"sync"

	casbin "github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"
	"github.com/casbin/casbin/v3/persist"
	"k8s.io/klog/v2"
)

//go:embed model.conf
var modelConf []byte

//go:embed policy.csv
var policyCsv []byte

// stringAdapter loads policy lines from an embedded string; it never
// persists since the policy set is compiled in and authorization is
// centralized here rather than sprinkled through storage.
type stringAdapter struct {
	policyText string
}

func (a *stringAdapter) LoadPolicy(m model.Model) error {
	scanner := bufio.NewScanner(strings.NewReader(a.policyText))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		persist.LoadPolicyLine(line, m)
	}
	return scanner.Err()
}

func (a *stringAdapter) SavePolicy(m model.Model) error { return nil }
func (a *stringAdapter) AddPolicy(sec string, ptype string, rule []string) error { return nil }
func (a *stringAdapter) RemovePolicy(sec string, ptype string, rule []string) error { return nil }
func (a *stringAdapter) RemoveFilteredPolicy(sec string, ptype string, fieldIndex int, fieldValues ...string) error {
	return nil
}

var (
	once     sync.Once
	enforcer *casbin.Enforcer
	initErr  error
)

func getEnforcer() (*casbin.Enforcer, error) {
	once.Do(func() {
		m, err := model.NewModelFromString(string(modelConf))
		if err != nil {
			klog.V(1).InfoS("failed to load casbin model from embedded file", "error", err)
			initErr = err
			return
		}

		adapter := &stringAdapter{policyText: string(policyCsv)}
		e, err := casbin.NewEnforcer(m, adapter)
		if err != nil {
			klog.V(1).InfoS("failed to initialize casbin enforcer", "error", err)
			initErr = err
			return
		}
		enforcer = e
		klog.V(1).InfoS("casbin enforcer initialized from embedded files")
	})
	return enforcer, initErr
}

// Enforce checks whether subject can perform act on obj.
func Enforce(sub RoleName, obj string, act Action) (bool, error) {
	e, err := getEnforcer()
	if err != nil {
		return false, err
	}
	return e.Enforce(string(sub), obj, string(act))
}
