package auth

import (
	"strings"
	"time"

	"github.com/karlseguin/ccache"
	"go.uber.org/zap"

	"github.com/xwiki-contrib/api-structured-data/dao"
	"github.com/xwiki-contrib/api-structured-data/metadata/models"
)

const (
	// rightsClass is the class of the access rule objects attached to a
	// document.
	rightsClass = "XWiki.XWikiRights"
	// Superadmin holds every right everywhere.
	Superadmin = "XWiki.superadmin"
	// rightsCacheTime bounds how stale a cached rule set may get.
	rightsCacheTime = time.Minute
)

// RightsAuthorization decides access from the rule objects stored on the
// target document. A document without rules covering the requested right is
// open; once any rule names the right, the user must be explicitly allowed,
// and an explicit denial always wins.
type RightsAuthorization struct {
	d      dao.DAO
	logger *zap.Logger
	cache  *ccache.Cache
}

// RightsOpt sets an option on RightsAuthorization.
type RightsOpt func(*RightsAuthorization)

// WithLogger sets a custom logger on a RightsAuthorization.
func WithLogger(logger *zap.Logger) RightsOpt {
	return func(r *RightsAuthorization) {
		r.logger = logger
	}
}

// NewRightsAuthorization constructs a RightsAuthorization reading rules
// through the given DAO.
func NewRightsAuthorization(d dao.DAO, opts ...RightsOpt) *RightsAuthorization {
	r := RightsAuthorization{
		d:      d,
		logger: zap.NewNop(),
		cache:  ccache.New(ccache.Configure().MaxSize(2000).ItemsToPrune(100)),
	}
	for _, opt := range opts {
		opt(&r)
	}
	return &r
}

// accessRule is one evaluated rule of a document.
type accessRule struct {
	levels []string
	users  []string
	allow  bool
}

// HasAccess implements the Authorization interface.
func (r *RightsAuthorization) HasAccess(user string, right Right, target models.DocumentReference) bool {
	return r.CheckAccess(user, right, target) == nil
}

// CheckAccess implements the Authorization interface.
func (r *RightsAuthorization) CheckAccess(user string, right Right, target models.DocumentReference) error {
	if user == "" {
		return ErrUserNotSpecified
	}
	if user == Superadmin {
		return nil
	}
	rules := r.rulesFor(target)
	ruled := false
	allowed := false
	for _, rule := range rules {
		if !containsFold(rule.levels, right.String()) {
			continue
		}
		ruled = true
		if containsFold(rule.users, user) {
			if !rule.allow {
				return ErrAccessDenied
			}
			allowed = true
		}
	}
	if ruled && !allowed {
		return ErrAccessDenied
	}
	return nil
}

// rulesFor loads the access rules of a document, cached for a short time.
func (r *RightsAuthorization) rulesFor(target models.DocumentReference) []accessRule {
	key := target.String()
	if item := r.cache.Get(key); item != nil && !item.Expired() {
		return item.Value().([]accessRule)
	}
	rules := r.loadRules(target)
	r.cache.Set(key, rules, rightsCacheTime)
	return rules
}

func (r *RightsAuthorization) loadRules(target models.DocumentReference) []accessRule {
	doc, err := r.d.GetDocument(target)
	if err != nil {
		if err != dao.ErrNoRows {
			r.logger.Error("Could not load access rules",
				zap.String("document", target.String()),
				zap.Error(err))
		}
		return nil
	}
	var rules []accessRule
	for _, obj := range doc.Objects {
		if obj.ClassName != rightsClass {
			continue
		}
		rules = append(rules, accessRule{
			levels: fieldEntries(obj, "levels"),
			users:  fieldEntries(obj, "users"),
			allow:  fieldAllows(obj),
		})
	}
	return rules
}

// fieldEntries reads a rule field that may be stored as a list or as a
// comma separated string.
func fieldEntries(obj *models.Object, name string) []string {
	v, ok := obj.Field(name)
	if !ok {
		return nil
	}
	if v.Kind.IsList() {
		return v.List
	}
	var entries []string
	for _, e := range strings.Split(v.Str, ",") {
		if trimmed := strings.TrimSpace(e); trimmed != "" {
			entries = append(entries, trimmed)
		}
	}
	return entries
}

// fieldAllows reads the allow flag of a rule. A rule without the flag is an
// allow rule.
func fieldAllows(obj *models.Object) bool {
	v, ok := obj.Field("allow")
	if !ok {
		return true
	}
	switch v.Kind {
	case models.KindBoolean:
		return v.Bool
	case models.KindInteger, models.KindLong:
		return v.Int != 0
	default:
		return v.Str != "0" && !strings.EqualFold(v.Str, "false")
	}
}

func containsFold(list []string, s string) bool {
	for _, e := range list {
		if strings.EqualFold(e, s) {
			return true
		}
	}
	return false
}
