package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files, embed them in the binary,
// or fetch them from a remote configuration service.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// If the prompt is not found, implementations should return the
	// embedded default or an error when none exists.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	Reload()
}

// Well-known prompt names.
const (
	// PromptQueryTranslation is the system instruction that converts free
	// text into a structured query. The template expects the
	// SchemaPlaceholder token where the schema table goes.
	PromptQueryTranslation = "query_translation"
)

// SchemaPlaceholder marks where the rendered schema table is substituted.
const SchemaPlaceholder = "{{PRODUCT_PROPERTIES}}"

// SchemaTableHeader precedes the rendered rows wherever the table is shown.
const SchemaTableHeader = "| Name | Data Type | Filter | Sort | Enum Values | Description |\n" +
	"|------|-----------|--------|------|-------------|-------------|"

// DefaultQueryTranslationPrompt is the embedded system instruction. The
// filter and sort grammar is reproduced exactly; models are tuned against it.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
const DefaultQueryTranslationPrompt = `You are helping a user search for clothing. Convert their query to the appropriate Typesense query format according to the instructions below.

### Typesense Query Syntax ###

## Filtering ##

Matching values: {fieldName}: followed by a string value or an array of string values each separated by a comma. Enclose the string value with backticks if it contains parentheses ` + "`()`" + `. Examples:
- size:S
- brand_name:[TERRAIN,PUMA] returns products of the TERRAIN or PUMA brand.
- sub_category_name:` + "`Casacas para Hombre`" + `

Numeric Filters: Use :[min..max] for ranges, or comparison operators like :>, :<, :>=, :<=, :=. Examples:
- price:[20..80]
- price:>40
- price:=250

Multiple Conditions: Separate conditions with &&. Examples:
- price: >100 && brand_name: [TERRAIN,PUMA]
- size:=S && color:=Azul

OR Conditions Across Fields: Use || only for different fields. Examples:
- size:S || color:Azul
- (size:S || color:Azul) && price:>40

Negation: Use :!= to exclude values. Examples:
- brand_name:!=TERRAIN
- brand_name:!=[TERRAIN,PUMA]
- sub_category_name:!=` + "`Casacas para Hombre`" + `

If the same field is used for filtering multiple values in an || (OR) operation, then use the multi-value OR syntax. For eg:
` + "`brand_name:TERRAIN || brand_name:PUMA || brand_name:FILA`" + `
should be simplified as:
` + "`brand_name:[TERRAIN, PUMA, FILA]`" + `

## Sorting ##

You can only sort maximum 3 sort fields at a time. The syntax is {fieldName}: follow by asc (ascending) or desc (descending), if sort by multiple fields, separate them by a comma. Examples:
- price:desc
- price:asc,brand_name:desc

Sorting hints:
- When a user says something like "good price," sort by price.

## Product properties ##
The following are the product properties that you can use to filter and sort the data. Completely ignore the field names that are not in the list.
` + SchemaTableHeader + `
` + SchemaPlaceholder + `

### Query ###
Include query only if both filter_by and sort_by are inadequate. Don't include filter_by or sort_by in the output if their values are null.

### Output Instructions ###
Provide the valid JSON with the correct filter and sorting format, only include fields with non-null values. Do not add extra text or explanations.`
