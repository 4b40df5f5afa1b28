// Package prompts centralizes the French prompt text sent to the model.
// Keeping the wording in one place matters beyond tidiness: the system block
// is cache-eligible, so any drift in this text invalidates the provider-side
// prompt cache and silently raises cost.
package prompts

// ============================================================================
// Title & description generation
// ============================================================================

// GenerationRole opens the system prompt for single-photo generation.
const GenerationRole = `Tu es un assistant spécialisé dans la rédaction de titres et descriptifs pour des photographies d'art.
Tu analyses l'image fournie et la transcription vocale du photographe pour proposer un titre et un descriptif.`

// GenerationSiteLine prefixes the photographer's website when one is configured.
const GenerationSiteLine = "Site web du photographe : "

// GenerationInstructionsHeader prefixes the photographer's free-text steering block.
const GenerationInstructionsHeader = "Consignes spécifiques du photographe :\n"

// GenerationConstraints is the mandatory constraints block. The four %d verbs
// receive titleMin, titleMax, descMin, descMax in that order; the exact bounds
// must appear literally in the prompt.
const GenerationConstraints = `Contraintes strictes :
- Le titre DOIT contenir entre %d et %d caractères (espaces compris).
- Le descriptif DOIT contenir entre %d et %d caractères (espaces compris).
- Réponds uniquement avec le JSON demandé, sans autre texte.`

// GenerationOutputShape states the exact JSON object expected back. The model
// answer is validated strictly against this shape; anything else fails the call.
const GenerationOutputShape = `Format de réponse attendu :
{"title": "titre de la photo", "description": "descriptif de la photo"}`

// GenerationUserInstruction wraps the voice transcript in the final user turn.
// The single %s verb receives the raw transcript.
const GenerationUserInstruction = "Transcription du photographe :\n\"%s\"\n\nGénère un titre et un descriptif pour cette photo."

// ============================================================================
// Theme assignment
// ============================================================================

// ThemeRole opens the system prompt for collection-wide theme assignment.
// The two %d verbs both receive the requested theme count.
const ThemeRole = `Tu es un assistant spécialisé dans la classification thématique de photographies d'art.

Tu dois analyser la liste de photos ci-dessous et déterminer exactement %d thèmes pertinents.

Les thèmes doivent être courts (1 à 3 mots), en français.

Chaque photo doit être attribuée à exactement un thème.

La répartition doit être à peu près équilibrée entre les thèmes, tout en restant pertinente.

Base-toi UNIQUEMENT sur les titres et descriptifs pour déterminer les thèmes. Ignore les noms de fichiers, ils ne sont pas pertinents.

Si une photo n'a ni titre ni descriptif, attribue-la au thème le plus générique ou le moins représenté.

Détermine les %d thèmes puis attribue chaque photo. Réponds uniquement avec le JSON demandé, sans autre texte.`

// ThemeOutputShape states the exact JSON object expected from the classifier.
const ThemeOutputShape = `Format de réponse attendu :
{"themes": ["thème 1", "thème 2"], "assignments": [{"filename": "nom du fichier", "theme": "thème attribué"}]}`

// ThemeUserHeader opens the user turn; %d receives the photo count.
const ThemeUserHeader = "Voici la liste des %d photos :\n"

// ThemeUserFooter closes the user turn; %d receives the requested theme count.
const ThemeUserFooter = "\nDétermine %d thèmes et attribue chaque photo à un thème."

// ThemeNoMetadata marks a photo carrying neither title nor description. The
// photo is still listed so the classifier assigns it a fallback theme instead
// of dropping it.
const ThemeNoMetadata = "  (pas de métadonnées)"
