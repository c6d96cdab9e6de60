package models

import "sync"

// SynapseCredentials is the service principal plus workspace used for Synapse
// discovery and as the source side of Synapse migrations.
type SynapseCredentials struct {
	TenantID       string `json:"tenantId"`
	ClientID       string `json:"clientId"`
	ClientSecret   string `json:"clientSecret"`
	SubscriptionID string `json:"subscriptionId,omitempty"`
	ResourceGroup  string `json:"resourceGroup,omitempty"`
	WorkspaceName  string `json:"workspaceName"`
}

// DatabricksCredentials is the workspace URL and PAT used for Databricks
// discovery and as the source side of Databricks migrations.
type DatabricksCredentials struct {
	WorkspaceURL string `json:"workspaceUrl"`
	AccessToken  string `json:"accessToken"`
	ClusterID    string `json:"clusterId,omitempty"`
}

// FabricCredentials is the service principal for the target tenant.
type FabricCredentials struct {
	TenantID     string `json:"tenantId"`
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"clientSecret"`
}

// UserProfile is the logged-in operator's cached profile. The email is
// required for workspace creation requests.
type UserProfile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// MaskSecret renders a secret for display without revealing it.
func MaskSecret(secret string) string {
	if secret == "" {
		return ""
	}
	return "••••••••"
}

// Session holds everything scoped to one operator session: credentials for
// the connected platforms, the cached profile, and the discovered
// inventories. Nothing here is persisted.
type Session struct {
	Synapse    *SynapseCredentials
	Databricks *DatabricksCredentials
	Fabric     *FabricCredentials
	Profile    *UserProfile

	SynapseWorkspace string
	SynapseAssets    []Asset
	DatabricksAssets []Asset
	FabricInventory  []FabricItem
}

// SessionStore is a thread-safe holder for the single active session.
type SessionStore struct {
	mu sync.RWMutex
	s  Session
}

// NewSessionStore creates an empty session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

// SetSynapse stores Synapse credentials and the discovered inventory.
func (st *SessionStore) SetSynapse(creds SynapseCredentials, workspace string, assets []Asset) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.s.Synapse = &creds
	st.s.SynapseWorkspace = workspace
	st.s.SynapseAssets = assets
}

// SetDatabricks stores Databricks credentials and the discovered inventory.
func (st *SessionStore) SetDatabricks(creds DatabricksCredentials, assets []Asset) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.s.Databricks = &creds
	st.s.DatabricksAssets = assets
}

// SetFabric stores Fabric credentials and the target-side inventory.
func (st *SessionStore) SetFabric(creds FabricCredentials, inventory []FabricItem) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.s.Fabric = &creds
	st.s.FabricInventory = inventory
}

// SetProfile caches the operator profile.
func (st *SessionStore) SetProfile(p UserProfile) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.s.Profile = &p
}

// Profile returns the cached profile, if any.
func (st *SessionStore) Profile() (UserProfile, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	if st.s.Profile == nil {
		return UserProfile{}, false
	}
	return *st.s.Profile, true
}

// SynapseCreds returns the stored Synapse credentials, if connected.
func (st *SessionStore) SynapseCreds() (SynapseCredentials, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	if st.s.Synapse == nil {
		return SynapseCredentials{}, false
	}
	return *st.s.Synapse, true
}

// DatabricksCreds returns the stored Databricks credentials, if connected.
func (st *SessionStore) DatabricksCreds() (DatabricksCredentials, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	if st.s.Databricks == nil {
		return DatabricksCredentials{}, false
	}
	return *st.s.Databricks, true
}

// FabricCreds returns the target credentials. Falls back to the Synapse
// service principal when no dedicated Fabric connection was made, matching
// how the console reuses the Azure principal for workspace operations.
func (st *SessionStore) FabricCreds() (FabricCredentials, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	if st.s.Fabric != nil {
		return *st.s.Fabric, true
	}
	if st.s.Synapse != nil {
		return FabricCredentials{
			TenantID:     st.s.Synapse.TenantID,
			ClientID:     st.s.Synapse.ClientID,
			ClientSecret: st.s.Synapse.ClientSecret,
		}, true
	}
	return FabricCredentials{}, false
}

// Assets returns the discovered inventory for a source platform.
func (st *SessionStore) Assets(source Source) []Asset {
	st.mu.RLock()
	defer st.mu.RUnlock()
	var src []Asset
	switch source {
	case SourceSynapse:
		src = st.s.SynapseAssets
	case SourceDatabricks:
		src = st.s.DatabricksAssets
	}
	out := make([]Asset, len(src))
	copy(out, src)
	return out
}

// FabricInventory returns the target-side inventory.
func (st *SessionStore) FabricInventory() []FabricItem {
	st.mu.RLock()
	defer st.mu.RUnlock()
	out := make([]FabricItem, len(st.s.FabricInventory))
	copy(out, st.s.FabricInventory)
	return out
}

// SynapseWorkspace returns the connected Synapse workspace name.
func (st *SessionStore) SynapseWorkspace() string {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.s.SynapseWorkspace
}

// Clear wipes the session on logout.
func (st *SessionStore) Clear() {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.s = Session{}
}
