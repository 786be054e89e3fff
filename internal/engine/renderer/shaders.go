package renderer

// maxJoints is the size of the bone matrix array in the vertex shader.
const maxJoints = 128

const meshVertexSrc = `#version 410 core
layout (location = 0) in vec3 aPosition;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec2 aTexCoord;
layout (location = 3) in vec4 aJoints;
layout (location = 4) in vec4 aWeights;

uniform mat4 uModel;
uniform mat4 uViewProj;
uniform bool uSkinned;
uniform mat4 uJoints[128];

out vec3 vNormal;
out vec2 vTexCoord;

void main() {
    mat4 skin = mat4(1.0);
    if (uSkinned) {
        skin = aWeights.x * uJoints[int(aJoints.x)]
             + aWeights.y * uJoints[int(aJoints.y)]
             + aWeights.z * uJoints[int(aJoints.z)]
             + aWeights.w * uJoints[int(aJoints.w)];
    }
    vec4 world = uModel * skin * vec4(aPosition, 1.0);
    vNormal = mat3(uModel * skin) * aNormal;
    vTexCoord = aTexCoord;
    gl_Position = uViewProj * world;
}
`

const meshFragmentSrc = `#version 410 core
in vec3 vNormal;
in vec2 vTexCoord;

uniform sampler2D uBaseTexture;
uniform vec4 uBaseColor;
uniform int uAlphaMode;
uniform float uAlphaCutoff;

uniform vec3 uSkyColor;
uniform vec3 uGroundColor;
uniform vec3 uUp;
uniform float uIntensity;

out vec4 FragColor;

void main() {
    vec4 base = texture(uBaseTexture, vTexCoord) * uBaseColor;
    if (uAlphaMode == 1 && base.a < uAlphaCutoff) {
        discard;
    }
    vec3 n = normalize(vNormal);
    if (!gl_FrontFacing) {
        n = -n;
    }
    float w = 0.5 * dot(n, uUp) + 0.5;
    vec3 light = mix(uGroundColor, uSkyColor, w) * uIntensity;
    float alpha = uAlphaMode == 2 ? base.a : 1.0;
    FragColor = vec4(base.rgb * light, alpha);
}
`

const lineVertexSrc = `#version 410 core
layout (location = 0) in vec3 aPosition;
uniform mat4 uViewProj;
void main() {
    gl_Position = uViewProj * vec4(aPosition, 1.0);
}
`

const lineFragmentSrc = `#version 410 core
uniform vec3 uColor;
out vec4 FragColor;
void main() {
    FragColor = vec4(uColor, 1.0);
}
`
