package client

import (
	"time"

	"github.com/samterminal/samclient/internal/client/models"
)

// Defaults used when the status payload only carries flat location fields.
const (
	DefaultBackgroundStyle = "bg-gradient-to-br from-slate-900 to-slate-800"
	DefaultDomainID        = "penacony"
	DefaultUserName        = "开拓者"
)

var defaultCoordinates = models.Coordinates{X: 50, Y: 50}

func mapAuth(r *authResponse) *models.AuthResult {
	return &models.AuthResult{Token: r.Token, Username: r.Username, Role: r.Role}
}

func mapItems(in []itemDTO) []models.Item {
	out := make([]models.Item, 0, len(in))
	for _, it := range in {
		out = append(out, models.Item{
			ID:          string(it.ID),
			Name:        it.Name,
			Description: it.Description,
			Icon:        it.Icon,
			Quantity:    it.Quantity,
		})
	}
	return out
}

func mapMemories(in []memoryDTO) []models.Memory {
	out := make([]models.Memory, 0, len(in))
	for _, m := range in {
		tags := m.Tags
		if tags == nil {
			tags = []string{}
		}
		out = append(out, models.Memory{
			ID:      string(m.ID),
			Title:   m.Title,
			Content: m.Content,
			Date:    m.Date,
			Tags:    tags,
		})
	}
	return out
}

// mapState synthesizes the current location from the flat status fields
// and fills the defaults the backend may omit.
func mapState(d *gameStateDTO) models.GameState {
	if d == nil {
		d = &gameStateDTO{}
	}

	name := d.CurrentLocationName
	if name == "" {
		name = d.CurrentLocation
	}
	userName := d.UserName
	if userName == "" {
		userName = DefaultUserName
	}

	return models.GameState{
		CurrentLocation: models.Location{
			ID:              d.CurrentLocation,
			Name:            name,
			Description:     d.LocationDynamicState,
			BackgroundStyle: DefaultBackgroundStyle,
			Coordinates:     defaultCoordinates,
			IsUnlocked:      true,
			DomainID:        DefaultDomainID,
		},
		LocationDynamicState: d.LocationDynamicState,
		FireflyEmotion:       d.FireflyEmotion,
		FireflyStatus:        d.FireflyStatus,
		FireflyMoodDetails:   d.FireflyMoodDetails,
		GameTime:             d.GameTime,
		Items:                mapItems(d.Items),
		Memories:             mapMemories(d.Memories),
		UserName:             userName,
	}
}

func mapMessages(in []chatMessageDTO) []models.Message {
	out := make([]models.Message, 0, len(in))
	for _, m := range in {
		var ts time.Time
		if p := m.Timestamp.ptr(); p != nil {
			ts = *p
		}
		out = append(out, models.Message{
			ID:        string(m.ID),
			Sender:    models.Sender(m.Sender),
			NPCName:   m.NPCName,
			Content:   m.Content,
			Narration: m.Narration,
			Timestamp: ts,
		})
	}
	return out
}

func mapStateUpdate(base string, d *stateUpdateDTO) *models.StateUpdate {
	if d == nil {
		return nil
	}
	u := &models.StateUpdate{}
	if d.Location != nil {
		u.Location = &models.LocationUpdate{
			ID:            string(d.Location.ID),
			Name:          d.Location.Name,
			BackgroundURL: NormalizeURL(base, d.Location.BackgroundURL),
		}
	}
	if d.Firefly != nil {
		u.Firefly = &models.FireflyUpdate{Emotion: d.Firefly.Emotion, Status: d.Firefly.Status}
	}
	if d.InventoryChange != nil {
		u.InventoryChange = &models.InventoryChange{
			ItemID: string(d.InventoryChange.ItemID),
			Delta:  d.InventoryChange.Delta,
		}
	}
	return u
}

func mapChat(base string, r *chatResponse) *models.ChatResult {
	return &models.ChatResult{
		Replies:     mapMessages(r.Messages),
		State:       mapState(r.State),
		StateUpdate: mapStateUpdate(base, r.StateUpdate),
		SessionID:   r.SessionID,
	}
}

func mapWorld(base string, r *mapResponse) *models.WorldMap {
	w := models.NewWorldMap()
	for _, d := range r.Domains {
		w.Domains[string(d.ID)] = models.StarDomain{
			ID:          string(d.ID),
			Name:        d.Name,
			Description: d.Description,
			Coordinates: models.Coordinates{X: d.X, Y: d.Y},
			Color:       d.Color,
		}
	}
	for _, l := range r.Locations {
		w.Locations[string(l.ID)] = models.Location{
			ID:              string(l.ID),
			Name:            l.Name,
			Description:     l.Description,
			BackgroundStyle: l.BackgroundStyle,
			BackgroundURL:   NormalizeURL(base, l.BackgroundURL),
			Coordinates:     models.Coordinates{X: l.X, Y: l.Y},
			IsUnlocked:      l.Unlocked,
			DomainID:        string(l.DomainID),
		}
	}
	return w
}

func mapFireflyAssets(base string, in []fireflyAssetDTO) []models.FireflyAsset {
	out := make([]models.FireflyAsset, 0, len(in))
	for _, a := range in {
		out = append(out, models.FireflyAsset{Emotion: a.Emotion, URL: NormalizeURL(base, a.URL)})
	}
	return out
}

func mapCharacter(base string, c characterDTO) models.Character {
	return models.Character{
		ID:          c.ID,
		Name:        c.Name,
		Role:        c.Role,
		Prompt:      c.Prompt,
		Description: c.Description,
		AvatarURL:   NormalizeURL(base, c.AvatarURL),
	}
}

func characterToDTO(c models.Character) characterDTO {
	return characterDTO{
		ID:          c.ID,
		Name:        c.Name,
		Role:        c.Role,
		Prompt:      c.Prompt,
		Description: c.Description,
		AvatarURL:   c.AvatarURL,
	}
}

func mapAdminDomain(d adminDomainDTO) models.AdminDomain {
	return models.AdminDomain(d)
}

func adminDomainToDTO(d models.AdminDomain) adminDomainDTO {
	return adminDomainDTO(d)
}

func mapAdminLocation(base string, l adminLocationDTO) models.AdminLocation {
	loc := models.AdminLocation(l)
	loc.BackgroundURL = NormalizeURL(base, l.BackgroundURL)
	return loc
}

func adminLocationToDTO(l models.AdminLocation) adminLocationDTO {
	return adminLocationDTO(l)
}

func mapLLMAPIConfig(r llmAPIConfigResponse) models.LLMAPIConfig {
	return models.LLMAPIConfig{
		ID:              r.ID,
		Name:            r.Name,
		BaseURL:         r.BaseURL,
		APIKey:          r.APIKey,
		ModelName:       r.ModelName,
		Temperature:     r.Temperature,
		Role:            r.Role,
		TokenLimit:      r.TokenLimit,
		TokenUsed:       r.TokenUsed,
		Status:          r.Status,
		FailureCount:    r.FailureCount,
		LastFailureAt:   r.LastFailureAt.ptr(),
		LastSuccessAt:   r.LastSuccessAt.ptr(),
		CircuitOpenedAt: r.CircuitOpenedAt.ptr(),
		MaxLoad:         r.MaxLoad,
		CurrentLoad:     r.CurrentLoad,
		CreatedAt:       r.CreatedAt.ptr(),
		UpdatedAt:       r.UpdatedAt.ptr(),
	}
}

func llmAPIConfigToRequest(c models.LLMAPIConfig) llmAPIConfigRequest {
	return llmAPIConfigRequest{
		Name:        c.Name,
		BaseURL:     c.BaseURL,
		APIKey:      c.APIKey,
		ModelName:   c.ModelName,
		Temperature: c.Temperature,
		Role:        c.Role,
		TokenLimit:  c.TokenLimit,
		MaxLoad:     c.MaxLoad,
		Status:      c.Status,
	}
}

func mapSMTPConfig(r smtpConfigResponse) models.SMTPConfig {
	return models.SMTPConfig{
		ID:              r.ID,
		Name:            r.Name,
		Host:            r.Host,
		Port:            r.Port,
		Username:        r.Username,
		FromAddress:     r.FromAddress,
		UseTLS:          r.UseTLS,
		UseSSL:          r.UseSSL,
		Enabled:         r.Enabled,
		MaxPerMinute:    r.MaxPerMinute,
		MaxPerDay:       r.MaxPerDay,
		FailureCount:    r.FailureCount,
		LastFailureAt:   r.LastFailureAt.ptr(),
		LastSuccessAt:   r.LastSuccessAt.ptr(),
		CircuitOpenedAt: r.CircuitOpenedAt.ptr(),
		HasPassword:     r.HasPassword,
		Status:          r.Status,
	}
}

func smtpConfigToRequest(c models.SMTPConfig) smtpConfigRequest {
	return smtpConfigRequest{
		Name:         c.Name,
		Host:         c.Host,
		Port:         c.Port,
		Username:     c.Username,
		Password:     c.Password,
		FromAddress:  c.FromAddress,
		UseTLS:       c.UseTLS,
		UseSSL:       c.UseSSL,
		Enabled:      c.Enabled,
		MaxPerMinute: c.MaxPerMinute,
		MaxPerDay:    c.MaxPerDay,
	}
}

func mapEmailSendLog(d emailSendLogDTO) models.EmailSendLog {
	return models.EmailSendLog{
		ID:         d.ID,
		Username:   d.Username,
		IP:         d.IP,
		Email:      d.Email,
		CodeMasked: d.CodeMasked,
		SentAt:     d.SentAt.ptr(),
		SMTPID:     d.SMTPID,
		Status:     d.Status,
	}
}

func mapEmailIPStats(d emailIPStatsDTO) models.EmailIPStats {
	return models.EmailIPStats{
		IP:              d.IP,
		RequestedToday:  d.RequestedToday,
		UnverifiedToday: d.UnverifiedToday,
		RequestedTotal:  d.RequestedTotal,
		UnverifiedTotal: d.UnverifiedTotal,
		BanStatus:       d.BanStatus,
		BannedUntil:     d.BannedUntil.ptr(),
	}
}

func mapPage[D, M any](p *pageResponse[D], fn func(D) M) *models.Page[M] {
	items := make([]M, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, fn(it))
	}
	return &models.Page[M]{Items: items, Total: p.Total, Page: p.Page, Size: p.Size}
}

// mapUpload normalizes the url field and keeps the rest of the body.
func mapUpload(base string, r uploadResponse) *models.UploadResult {
	res := &models.UploadResult{}
	for k, v := range r {
		if k == "url" {
			if u, ok := v.(string); ok {
				res.URL = NormalizeURL(base, u)
			}
			continue
		}
		if res.Fields == nil {
			res.Fields = make(map[string]any, len(r))
		}
		res.Fields[k] = v
	}
	return res
}
